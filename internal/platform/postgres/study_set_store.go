package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/store"
)

// PostgresStudySetStore implements the store.StudySetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudySetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySetStore creates a new PostgreSQL implementation of the
// StudySetStore interface. If logger is nil, a default logger will be used.
func NewPostgresStudySetStore(db store.DBTX, logger *slog.Logger) *PostgresStudySetStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySetStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_set_store")),
	}
}

// Ensure PostgresStudySetStore implements store.StudySetStore interface
var _ store.StudySetStore = (*PostgresStudySetStore)(nil)

// WithTx implements store.StudySetStore.WithTx
func (s *PostgresStudySetStore) WithTx(tx *sql.Tx) store.StudySetStore {
	return &PostgresStudySetStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.StudySetStore.Create
func (s *PostgresStudySetStore) Create(ctx context.Context, set *domain.StudySet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("study set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("study_set_id", set.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sets (id, user_id, title, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		set.ID,
		set.UserID,
		set.Title,
		set.Description,
		set.IsPublic,
		set.CreatedAt,
		set.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during study set creation",
				slog.String("study_set_id", set.ID.String()),
				slog.String("user_id", set.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, set.UserID)
		}
		log.Error("failed to create study set",
			slog.String("error", err.Error()),
			slog.String("study_set_id", set.ID.String()))
		return err
	}

	log.Info("study set created successfully",
		slog.String("study_set_id", set.ID.String()),
		slog.String("user_id", set.UserID.String()))
	return nil
}

// GetByID implements store.StudySetStore.GetByID
// The query is scoped to the owner, so a set owned by someone else returns
// store.ErrStudySetNotFound.
func (s *PostgresStudySetStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.StudySet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, is_public, created_at, updated_at
		FROM study_sets
		WHERE id = $1 AND user_id = $2
	`

	var set domain.StudySet
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&set.ID,
		&set.UserID,
		&set.Title,
		&set.Description,
		&set.IsPublic,
		&set.CreatedAt,
		&set.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study set not found",
				slog.String("study_set_id", id.String()))
			return nil, store.ErrStudySetNotFound
		}
		log.Error("failed to get study set by ID",
			slog.String("error", err.Error()),
			slog.String("study_set_id", id.String()))
		return nil, err
	}

	return &set, nil
}

// ListByOwner implements store.StudySetStore.ListByOwner
func (s *PostgresStudySetStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.StudySet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, is_public, created_at, updated_at
		FROM study_sets
		WHERE user_id = $1
		ORDER BY title ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list study sets",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sets := make([]*domain.StudySet, 0)
	for rows.Next() {
		var set domain.StudySet
		if err := rows.Scan(
			&set.ID,
			&set.UserID,
			&set.Title,
			&set.Description,
			&set.IsPublic,
			&set.CreatedAt,
			&set.UpdatedAt,
		); err != nil {
			log.Error("failed to scan study set row",
				slog.String("error", err.Error()))
			return nil, err
		}
		sets = append(sets, &set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

// Update implements store.StudySetStore.Update
// Returns store.ErrStudySetNotFound when the set is absent or not owned.
func (s *PostgresStudySetStore) Update(ctx context.Context, set *domain.StudySet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("study set validation failed during update",
			slog.String("error", err.Error()),
			slog.String("study_set_id", set.ID.String()))
		return err
	}

	query := `
		UPDATE study_sets
		SET title = $1, description = $2, is_public = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		set.Title,
		set.Description,
		set.IsPublic,
		set.UpdatedAt,
		set.ID,
		set.UserID,
	)
	if err != nil {
		log.Error("failed to update study set",
			slog.String("error", err.Error()),
			slog.String("study_set_id", set.ID.String()))
		return err
	}

	return checkRowsAffected(result, store.ErrStudySetNotFound)
}

// Delete implements store.StudySetStore.Delete
// Flashcards, chat messages, quiz attempts, and reminders referencing the
// set are removed by ON DELETE CASCADE.
func (s *PostgresStudySetStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM study_sets
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete study set",
			slog.String("error", err.Error()),
			slog.String("study_set_id", id.String()))
		return err
	}

	if err := checkRowsAffected(result, store.ErrStudySetNotFound); err != nil {
		return err
	}

	log.Info("study set deleted",
		slog.String("study_set_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

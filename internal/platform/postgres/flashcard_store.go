package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
// Cards are validated before any insert; one bad card fails the whole batch.
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	query := `
		INSERT INTO flashcards (id, study_set_id, front_text, back_text, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, card := range cards {
		_, err := s.db.ExecContext(
			ctx,
			query,
			card.ID,
			card.StudySetID,
			card.FrontText,
			card.BackText,
			card.Position,
			card.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				log.Warn("foreign key violation during flashcard creation",
					slog.String("flashcard_id", card.ID.String()),
					slog.String("study_set_id", card.StudySetID.String()))
				return fmt.Errorf("%w: study set with ID %s not found",
					store.ErrInvalidEntity, card.StudySetID)
			}
			log.Error("failed to create flashcard",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	log.Info("flashcards created successfully",
		slog.Int("count", len(cards)),
		slog.String("study_set_id", cards[0].StudySetID.String()))
	return nil
}

// ListForOwner implements store.FlashcardStore.ListForOwner
// The join against study_sets enforces ownership: a set owned by someone
// else returns store.ErrStudySetNotFound rather than an empty list.
func (s *PostgresFlashcardStore) ListForOwner(
	ctx context.Context,
	studySetID, ownerID uuid.UUID,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Existence and ownership check first so an empty set is
	// distinguishable from a missing one.
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM study_sets WHERE id = $1 AND user_id = $2)`,
		studySetID, ownerID,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check study set ownership",
			slog.String("error", err.Error()),
			slog.String("study_set_id", studySetID.String()))
		return nil, err
	}
	if !exists {
		log.Debug("study set not found or not owned",
			slog.String("study_set_id", studySetID.String()))
		return nil, store.ErrStudySetNotFound
	}

	query := `
		SELECT id, study_set_id, front_text, back_text, position, created_at
		FROM flashcards
		WHERE study_set_id = $1
		ORDER BY position ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, studySetID)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("study_set_id", studySetID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(
			&card.ID,
			&card.StudySetID,
			&card.FrontText,
			&card.BackText,
			&card.Position,
			&card.CreatedAt,
		); err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// DeleteBySet implements store.FlashcardStore.DeleteBySet
// Deleting zero rows is not an error; an empty set is a valid state.
func (s *PostgresFlashcardStore) DeleteBySet(ctx context.Context, studySetID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM flashcards WHERE study_set_id = $1`, studySetID)
	if err != nil {
		log.Error("failed to delete flashcards",
			slog.String("error", err.Error()),
			slog.String("study_set_id", studySetID.String()))
		return err
	}

	return nil
}

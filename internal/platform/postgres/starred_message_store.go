package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/store"
)

// PostgresStarredMessageStore implements the store.StarredMessageStore
// interface using a PostgreSQL database as the storage backend.
type PostgresStarredMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStarredMessageStore creates a new PostgreSQL implementation of
// the StarredMessageStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresStarredMessageStore(db store.DBTX, logger *slog.Logger) *PostgresStarredMessageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStarredMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "starred_message_store")),
	}
}

// Ensure PostgresStarredMessageStore implements store.StarredMessageStore
var _ store.StarredMessageStore = (*PostgresStarredMessageStore)(nil)

// Create implements store.StarredMessageStore.Create
func (s *PostgresStarredMessageStore) Create(ctx context.Context, msg *domain.StarredMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("starred message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("starred_id", msg.ID.String()))
		return err
	}

	query := `
		INSERT INTO starred_messages
			(id, user_id, study_set_id, message_content, question, study_set_title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.UserID,
		msg.StudySetID,
		msg.MessageContent,
		msg.Question,
		msg.StudySetTitle,
		msg.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during starred message creation",
				slog.String("starred_id", msg.ID.String()),
				slog.String("user_id", msg.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, msg.UserID)
		}
		log.Error("failed to create starred message",
			slog.String("error", err.Error()),
			slog.String("starred_id", msg.ID.String()))
		return err
	}

	log.Info("message starred",
		slog.String("starred_id", msg.ID.String()),
		slog.String("user_id", msg.UserID.String()))
	return nil
}

// ListByUser implements store.StarredMessageStore.ListByUser
func (s *PostgresStarredMessageStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StarredMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, study_set_id, message_content, question, study_set_title, created_at
		FROM starred_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list starred messages",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*domain.StarredMessage, 0)
	for rows.Next() {
		var msg domain.StarredMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.StudySetID,
			&msg.MessageContent,
			&msg.Question,
			&msg.StudySetTitle,
			&msg.CreatedAt,
		); err != nil {
			log.Error("failed to scan starred message row",
				slog.String("error", err.Error()))
			return nil, err
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// Delete implements store.StarredMessageStore.Delete
// Returns store.ErrStarredMessageNotFound when absent or not owned.
func (s *PostgresStarredMessageStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM starred_messages WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		log.Error("failed to delete starred message",
			slog.String("error", err.Error()),
			slog.String("starred_id", id.String()))
		return err
	}

	return checkRowsAffected(result, store.ErrStarredMessageNotFound)
}

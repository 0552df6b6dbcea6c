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

// PostgresChatMessageStore implements the store.ChatMessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChatMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChatMessageStore creates a new PostgreSQL implementation of the
// ChatMessageStore interface. If logger is nil, a default logger will be used.
func NewPostgresChatMessageStore(db store.DBTX, logger *slog.Logger) *PostgresChatMessageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChatMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_message_store")),
	}
}

// Ensure PostgresChatMessageStore implements store.ChatMessageStore interface
var _ store.ChatMessageStore = (*PostgresChatMessageStore)(nil)

// Create implements store.ChatMessageStore.Create
func (s *PostgresChatMessageStore) Create(ctx context.Context, msg *domain.ChatMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("chat message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	query := `
		INSERT INTO chat_messages (id, user_id, study_set_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.UserID,
		msg.StudySetID,
		string(msg.Role),
		msg.Content,
		msg.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during chat message creation",
				slog.String("message_id", msg.ID.String()),
				slog.String("study_set_id", msg.StudySetID.String()))
			return fmt.Errorf("%w: study set with ID %s not found",
				store.ErrInvalidEntity, msg.StudySetID)
		}
		log.Error("failed to create chat message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	return nil
}

// ListBySet implements store.ChatMessageStore.ListBySet
func (s *PostgresChatMessageStore) ListBySet(
	ctx context.Context,
	userID, studySetID uuid.UUID,
) ([]*domain.ChatMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, study_set_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1 AND study_set_id = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, studySetID)
	if err != nil {
		log.Error("failed to list chat messages",
			slog.String("error", err.Error()),
			slog.String("study_set_id", studySetID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*domain.ChatMessage, 0)
	for rows.Next() {
		var msg domain.ChatMessage
		var role string
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.StudySetID,
			&role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			log.Error("failed to scan chat message row",
				slog.String("error", err.Error()))
			return nil, err
		}
		msg.Role = domain.ChatRole(role)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// DeleteBySet implements store.ChatMessageStore.DeleteBySet
// Clearing an already-empty history is not an error.
func (s *PostgresChatMessageStore) DeleteBySet(ctx context.Context, userID, studySetID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE user_id = $1 AND study_set_id = $2`,
		userID, studySetID)
	if err != nil {
		log.Error("failed to delete chat messages",
			slog.String("error", err.Error()),
			slog.String("study_set_id", studySetID.String()))
		return err
	}

	log.Info("chat history cleared",
		slog.String("user_id", userID.String()),
		slog.String("study_set_id", studySetID.String()))
	return nil
}

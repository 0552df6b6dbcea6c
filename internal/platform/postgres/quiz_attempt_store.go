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

// defaultAttemptLimit caps a quiz history listing when the caller does not
// supply a limit.
const defaultAttemptLimit = 50

// PostgresQuizAttemptStore implements the store.QuizAttemptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuizAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizAttemptStore creates a new PostgreSQL implementation of the
// QuizAttemptStore interface. If logger is nil, a default logger will be used.
func NewPostgresQuizAttemptStore(db store.DBTX, logger *slog.Logger) *PostgresQuizAttemptStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizAttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_attempt_store")),
	}
}

// Ensure PostgresQuizAttemptStore implements store.QuizAttemptStore
var _ store.QuizAttemptStore = (*PostgresQuizAttemptStore)(nil)

// Create implements store.QuizAttemptStore.Create
func (s *PostgresQuizAttemptStore) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("quiz attempt validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	query := `
		INSERT INTO quiz_attempts
			(id, user_id, study_set_id, quiz_type, score, total_questions, time_taken_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.StudySetID,
		string(attempt.QuizType),
		attempt.Score,
		attempt.TotalQuestions,
		attempt.TimeTakenSecs,
		attempt.CompletedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during quiz attempt creation",
				slog.String("attempt_id", attempt.ID.String()),
				slog.String("study_set_id", attempt.StudySetID.String()))
			return fmt.Errorf("%w: study set with ID %s not found",
				store.ErrInvalidEntity, attempt.StudySetID)
		}
		log.Error("failed to create quiz attempt",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	log.Info("quiz attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("user_id", attempt.UserID.String()),
		slog.Int("score", attempt.Score),
		slog.Int("total_questions", attempt.TotalQuestions))
	return nil
}

// ListByUser implements store.QuizAttemptStore.ListByUser
func (s *PostgresQuizAttemptStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.QuizAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultAttemptLimit
	}

	query := `
		SELECT id, user_id, study_set_id, quiz_type, score, total_questions, time_taken_seconds, completed_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list quiz attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	attempts := make([]*domain.QuizAttempt, 0)
	for rows.Next() {
		var attempt domain.QuizAttempt
		var quizType string
		if err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.StudySetID,
			&quizType,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.TimeTakenSecs,
			&attempt.CompletedAt,
		); err != nil {
			log.Error("failed to scan quiz attempt row",
				slog.String("error", err.Error()))
			return nil, err
		}
		attempt.QuizType = domain.QuizType(quizType)
		attempts = append(attempts, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

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

// PostgresReminderStore implements the store.ReminderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReminderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReminderStore creates a new PostgreSQL implementation of the
// ReminderStore interface. If logger is nil, a default logger will be used.
func NewPostgresReminderStore(db store.DBTX, logger *slog.Logger) *PostgresReminderStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReminderStore{
		db:     db,
		logger: logger.With(slog.String("component", "reminder_store")),
	}
}

// Ensure PostgresReminderStore implements store.ReminderStore
var _ store.ReminderStore = (*PostgresReminderStore)(nil)

// Create implements store.ReminderStore.Create
func (s *PostgresReminderStore) Create(ctx context.Context, reminder *domain.Reminder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		log.Warn("reminder validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_reminders
			(id, user_id, study_set_id, title, reminder_time, frequency, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reminder.ID,
		reminder.UserID,
		reminder.StudySetID,
		reminder.Title,
		reminder.ReminderTime,
		string(reminder.Frequency),
		reminder.IsActive,
		reminder.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during reminder creation",
				slog.String("reminder_id", reminder.ID.String()),
				slog.String("study_set_id", reminder.StudySetID.String()))
			return fmt.Errorf("%w: study set with ID %s not found",
				store.ErrInvalidEntity, reminder.StudySetID)
		}
		log.Error("failed to create reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	return nil
}

// ListByUser implements store.ReminderStore.ListByUser
func (s *PostgresReminderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, study_set_id, title, reminder_time, frequency, is_active, created_at
		FROM study_reminders
		WHERE user_id = $1
		ORDER BY reminder_time ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reminders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	reminders := make([]*domain.Reminder, 0)
	for rows.Next() {
		var reminder domain.Reminder
		var frequency string
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.StudySetID,
			&reminder.Title,
			&reminder.ReminderTime,
			&frequency,
			&reminder.IsActive,
			&reminder.CreatedAt,
		); err != nil {
			log.Error("failed to scan reminder row",
				slog.String("error", err.Error()))
			return nil, err
		}
		reminder.Frequency = domain.ReminderFrequency(frequency)
		reminders = append(reminders, &reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reminders, nil
}

// SetActive implements store.ReminderStore.SetActive
// Returns store.ErrReminderNotFound when absent or not owned.
func (s *PostgresReminderStore) SetActive(ctx context.Context, id, userID uuid.UUID, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE study_reminders SET is_active = $1 WHERE id = $2 AND user_id = $3`,
		active, id, userID)
	if err != nil {
		log.Error("failed to toggle reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return err
	}

	return checkRowsAffected(result, store.ErrReminderNotFound)
}

// Delete implements store.ReminderStore.Delete
// Returns store.ErrReminderNotFound when absent or not owned.
func (s *PostgresReminderStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM study_reminders WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		log.Error("failed to delete reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return err
	}

	return checkRowsAffected(result, store.ErrReminderNotFound)
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quizlight/quizlight-api/internal/domain"
)

// QuizAttemptStore defines the interface for quiz attempt persistence.
type QuizAttemptStore interface {
	// Create records a completed quiz attempt.
	Create(ctx context.Context, attempt *domain.QuizAttempt) error

	// ListByUser retrieves the user's quiz attempts, newest first,
	// capped at limit (a non-positive limit applies a default).
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.QuizAttempt, error)
}

// ReminderStore defines the interface for study reminder persistence.
type ReminderStore interface {
	// Create saves a new reminder.
	Create(ctx context.Context, reminder *domain.Reminder) error

	// ListByUser retrieves all of the user's reminders ordered by
	// reminder time ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error)

	// SetActive toggles a reminder owned by the user.
	// Returns ErrReminderNotFound if absent or not owned.
	SetActive(ctx context.Context, id, userID uuid.UUID, active bool) error

	// Delete removes a reminder owned by the user.
	// Returns ErrReminderNotFound if absent or not owned.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

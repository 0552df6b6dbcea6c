package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReminderFrequency identifies how often a study reminder repeats.
type ReminderFrequency string

// Supported reminder frequencies.
const (
	ReminderOnce    ReminderFrequency = "once"
	ReminderDaily   ReminderFrequency = "daily"
	ReminderWeekly  ReminderFrequency = "weekly"
	ReminderMonthly ReminderFrequency = "monthly"
)

// Common validation errors for Reminder
var (
	ErrEmptyReminderID     = errors.New("reminder ID cannot be empty")
	ErrEmptyReminderUserID = errors.New("reminder user ID cannot be empty")
	ErrEmptyReminderSetID  = errors.New("reminder study set ID cannot be empty")
	ErrEmptyReminderTitle  = errors.New("reminder title cannot be empty")
	ErrInvalidReminderFreq = errors.New("invalid reminder frequency")
	ErrZeroReminderTime    = errors.New("reminder time must be set")
)

// Reminder is a scheduled study reminder tied to a study set.
type Reminder struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	StudySetID   uuid.UUID         `json:"study_set_id"`
	Title        string            `json:"title"`
	ReminderTime time.Time         `json:"reminder_time"`
	Frequency    ReminderFrequency `json:"frequency"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewReminder creates a new active Reminder.
// Returns an error if validation fails.
func NewReminder(
	userID, studySetID uuid.UUID,
	title string,
	reminderTime time.Time,
	frequency ReminderFrequency,
) (*Reminder, error) {
	reminder := &Reminder{
		ID:           uuid.New(),
		UserID:       userID,
		StudySetID:   studySetID,
		Title:        title,
		ReminderTime: reminderTime,
		Frequency:    frequency,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Validate checks if the Reminder has valid data.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReminderID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReminderUserID
	}

	if r.StudySetID == uuid.Nil {
		return ErrEmptyReminderSetID
	}

	if r.Title == "" {
		return ErrEmptyReminderTitle
	}

	if r.ReminderTime.IsZero() {
		return ErrZeroReminderTime
	}

	if !isValidReminderFrequency(r.Frequency) {
		return ErrInvalidReminderFreq
	}

	return nil
}

func isValidReminderFrequency(f ReminderFrequency) bool {
	switch f {
	case ReminderOnce, ReminderDaily, ReminderWeekly, ReminderMonthly:
		return true
	default:
		return false
	}
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StarredMessage
var (
	ErrEmptyStarredMessageID      = errors.New("starred message ID cannot be empty")
	ErrEmptyStarredMessageUserID  = errors.New("starred message user ID cannot be empty")
	ErrEmptyStarredMessageSetID   = errors.New("starred message study set ID cannot be empty")
	ErrEmptyStarredMessageContent = errors.New("starred message content cannot be empty")
	ErrEmptyStarredQuestion       = errors.New("starred message question cannot be empty")
)

// StarredMessage is an assistant answer a user bookmarked for later review.
// The study set title is denormalized so the bookmark stays readable even if
// the set is renamed or deleted.
type StarredMessage struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	StudySetID     uuid.UUID `json:"study_set_id"`
	MessageContent string    `json:"message_content"`
	Question       string    `json:"question"`
	StudySetTitle  string    `json:"study_set_title"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStarredMessage creates a new StarredMessage bookmark.
// Returns an error if validation fails.
func NewStarredMessage(
	userID, studySetID uuid.UUID,
	messageContent, question, studySetTitle string,
) (*StarredMessage, error) {
	msg := &StarredMessage{
		ID:             uuid.New(),
		UserID:         userID,
		StudySetID:     studySetID,
		MessageContent: messageContent,
		Question:       question,
		StudySetTitle:  studySetTitle,
		CreatedAt:      time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the StarredMessage has valid data.
func (m *StarredMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyStarredMessageID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyStarredMessageUserID
	}

	if m.StudySetID == uuid.Nil {
		return ErrEmptyStarredMessageSetID
	}

	if m.MessageContent == "" {
		return ErrEmptyStarredMessageContent
	}

	if m.Question == "" {
		return ErrEmptyStarredQuestion
	}

	return nil
}

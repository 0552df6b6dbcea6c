package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

// Possible chat roles. Only these two are persisted; system instructions are
// assembled per request and never stored.
const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Common validation errors for ChatMessage
var (
	ErrEmptyChatMessageID      = errors.New("chat message ID cannot be empty")
	ErrEmptyChatMessageUserID  = errors.New("chat message user ID cannot be empty")
	ErrEmptyChatMessageSetID   = errors.New("chat message study set ID cannot be empty")
	ErrEmptyChatMessageContent = errors.New("chat message content cannot be empty")
	ErrInvalidChatRole         = errors.New("invalid chat role")
)

// ChatMessage represents one turn of the study-set chat, persisted so a user
// can resume a conversation about a study set.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	StudySetID uuid.UUID `json:"study_set_id"`
	Role       ChatRole  `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewChatMessage creates a new ChatMessage for the given user and study set.
// Returns an error if validation fails.
func NewChatMessage(userID, studySetID uuid.UUID, role ChatRole, content string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:         uuid.New(),
		UserID:     userID,
		StudySetID: studySetID,
		Role:       role,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ChatMessage has valid data.
// Returns an error if any field fails validation.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyChatMessageID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyChatMessageUserID
	}

	if m.StudySetID == uuid.Nil {
		return ErrEmptyChatMessageSetID
	}

	if m.Role != ChatRoleUser && m.Role != ChatRoleAssistant {
		return ErrInvalidChatRole
	}

	if m.Content == "" {
		return ErrEmptyChatMessageContent
	}

	return nil
}

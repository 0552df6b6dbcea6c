package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quizlight/quizlight-api/internal/domain"
)

// ChatMessageStore defines the interface for chat history persistence.
type ChatMessageStore interface {
	// Create saves a chat message.
	Create(ctx context.Context, msg *domain.ChatMessage) error

	// ListBySet retrieves the user's chat history for a study set,
	// ordered by creation time ascending.
	ListBySet(ctx context.Context, userID, studySetID uuid.UUID) ([]*domain.ChatMessage, error)

	// DeleteBySet clears the user's chat history for a study set.
	DeleteBySet(ctx context.Context, userID, studySetID uuid.UUID) error
}

// StarredMessageStore defines the interface for bookmark persistence.
type StarredMessageStore interface {
	// Create saves a starred message.
	Create(ctx context.Context, msg *domain.StarredMessage) error

	// ListByUser retrieves all of the user's starred messages,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StarredMessage, error)

	// Delete removes a starred message owned by the user.
	// Returns ErrStarredMessageNotFound if absent or not owned.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

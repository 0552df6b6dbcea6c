package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quizlight/quizlight-api/internal/domain"
)

// StudySetStore defines the interface for study set persistence.
//
// Every read and write is scoped to an owner ID; a set that exists but
// belongs to someone else is indistinguishable from one that does not exist.
// The API layer relies on this for access control and does not re-verify
// ownership itself.
type StudySetStore interface {
	// Create saves a new study set.
	Create(ctx context.Context, set *domain.StudySet) error

	// GetByID retrieves a study set by ID, scoped to the owner.
	// Returns ErrStudySetNotFound if absent or not owned by ownerID.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.StudySet, error)

	// ListByOwner retrieves all study sets owned by the user, ordered by title.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.StudySet, error)

	// Update saves changes to an existing study set, scoped to the owner.
	// Returns ErrStudySetNotFound if absent or not owned.
	Update(ctx context.Context, set *domain.StudySet) error

	// Delete removes a study set and, via cascade, its flashcards.
	// Returns ErrStudySetNotFound if absent or not owned by ownerID.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a StudySetStore bound to the given transaction, so a
	// set and its flashcards can be written atomically.
	WithTx(tx *sql.Tx) StudySetStore
}

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// CreateMultiple saves multiple flashcards. Run it within a transaction
	// (store.RunInTransaction + WithTx) when the cards must land atomically
	// with a study set write.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// ListForOwner retrieves the flashcards of a study set, verifying that
	// the set belongs to ownerID. Returns ErrStudySetNotFound when the set
	// is absent or owned by someone else.
	ListForOwner(ctx context.Context, studySetID, ownerID uuid.UUID) ([]*domain.Flashcard, error)

	// DeleteBySet removes all flashcards of a study set. Used by the
	// replace-all edit flow before re-inserting the edited cards.
	DeleteBySet(ctx context.Context, studySetID uuid.UUID) error

	// WithTx returns a FlashcardStore bound to the given transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}

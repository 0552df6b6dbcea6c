package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Flashcard
var (
	ErrEmptyFlashcardID         = errors.New("flashcard ID cannot be empty")
	ErrEmptyFlashcardStudySetID = errors.New("flashcard study set ID cannot be empty")
	ErrEmptyFlashcardFront      = errors.New("flashcard front text cannot be empty")
	ErrEmptyFlashcardBack       = errors.New("flashcard back text cannot be empty")
)

// Flashcard represents a question/answer text pair belonging to a study set.
// FrontText carries the question side, BackText the answer side.
type Flashcard struct {
	ID         uuid.UUID `json:"id"`
	StudySetID uuid.UUID `json:"study_set_id"`
	FrontText  string    `json:"front_text"`
	BackText   string    `json:"back_text"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewFlashcard creates a new Flashcard belonging to the given study set.
// It generates a new UUID for the card ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewFlashcard(studySetID uuid.UUID, frontText, backText string, position int) (*Flashcard, error) {
	card := &Flashcard{
		ID:         uuid.New(),
		StudySetID: studySetID,
		FrontText:  frontText,
		BackText:   backText,
		Position:   position,
		CreatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFlashcardID
	}

	if f.StudySetID == uuid.Nil {
		return ErrEmptyFlashcardStudySetID
	}

	if f.FrontText == "" {
		return ErrEmptyFlashcardFront
	}

	if f.BackText == "" {
		return ErrEmptyFlashcardBack
	}

	return nil
}

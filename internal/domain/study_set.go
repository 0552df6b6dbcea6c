package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudySet
var (
	ErrEmptyStudySetID     = errors.New("study set ID cannot be empty")
	ErrEmptyStudySetUserID = errors.New("study set user ID cannot be empty")
	ErrEmptyStudySetTitle  = errors.New("study set title cannot be empty")
)

// StudySet represents a named collection of flashcards owned by one user,
// optionally marked public.
type StudySet struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewStudySet creates a new StudySet with the given owner, title, and
// description. It generates a new UUID for the set ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewStudySet(userID uuid.UUID, title, description string, isPublic bool) (*StudySet, error) {
	set := &StudySet{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the StudySet has valid data.
// Returns an error if any field fails validation.
func (s *StudySet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStudySetID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyStudySetUserID
	}

	if s.Title == "" {
		return ErrEmptyStudySetTitle
	}

	return nil
}

// Update replaces the set's title, description, and visibility, and bumps
// the UpdatedAt timestamp. Returns an error if the new data is invalid.
func (s *StudySet) Update(title, description string, isPublic bool) error {
	origTitle, origDescription, origPublic := s.Title, s.Description, s.IsPublic
	s.Title = title
	s.Description = description
	s.IsPublic = isPublic

	if err := s.Validate(); err != nil {
		s.Title, s.Description, s.IsPublic = origTitle, origDescription, origPublic
		return err
	}

	s.UpdatedAt = time.Now().UTC()
	return nil
}

package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewStudySet(t *testing.T) {
	userID := uuid.New()

	set, err := NewStudySet(userID, "Biology 101", "Cell structure and function", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if set.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if set.UserID != userID {
		t.Errorf("Expected user ID %v, got %v", userID, set.UserID)
	}
	if set.Title != "Biology 101" {
		t.Errorf("Expected title %q, got %q", "Biology 101", set.Title)
	}
	if set.IsPublic {
		t.Error("Expected set to be private")
	}
	if set.CreatedAt.IsZero() || set.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	_, err = NewStudySet(uuid.Nil, "Biology 101", "", false)
	if err != ErrEmptyStudySetUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyStudySetUserID, err)
	}

	_, err = NewStudySet(userID, "", "", false)
	if err != ErrEmptyStudySetTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyStudySetTitle, err)
	}
}

func TestStudySetUpdate(t *testing.T) {
	set, err := NewStudySet(uuid.New(), "Original", "Before", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	createdUpdatedAt := set.UpdatedAt

	if err := set.Update("Renamed", "After", true); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if set.Title != "Renamed" || set.Description != "After" || !set.IsPublic {
		t.Errorf("Update did not apply: %+v", set)
	}
	if set.UpdatedAt.Before(createdUpdatedAt) {
		t.Error("Expected UpdatedAt to advance")
	}

	// A rejected update must leave the set unchanged.
	if err := set.Update("", "Whatever", false); err != ErrEmptyStudySetTitle {
		t.Fatalf("Expected error %v, got %v", ErrEmptyStudySetTitle, err)
	}
	if set.Title != "Renamed" || set.Description != "After" || !set.IsPublic {
		t.Errorf("Rejected update mutated the set: %+v", set)
	}
}

func TestNewFlashcard(t *testing.T) {
	setID := uuid.New()

	card, err := NewFlashcard(setID, "What is mitosis?", "Cell division producing identical cells", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if card.StudySetID != setID {
		t.Errorf("Expected study set ID %v, got %v", setID, card.StudySetID)
	}
	if card.Position != 3 {
		t.Errorf("Expected position 3, got %d", card.Position)
	}

	_, err = NewFlashcard(uuid.Nil, "front", "back", 0)
	if err != ErrEmptyFlashcardStudySetID {
		t.Errorf("Expected error %v, got %v", ErrEmptyFlashcardStudySetID, err)
	}

	_, err = NewFlashcard(setID, "", "back", 0)
	if err != ErrEmptyFlashcardFront {
		t.Errorf("Expected error %v, got %v", ErrEmptyFlashcardFront, err)
	}

	_, err = NewFlashcard(setID, "front", "", 0)
	if err != ErrEmptyFlashcardBack {
		t.Errorf("Expected error %v, got %v", ErrEmptyFlashcardBack, err)
	}
}

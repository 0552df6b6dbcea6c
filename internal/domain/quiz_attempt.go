package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuizType identifies how a quiz was assembled from the flashcards.
type QuizType string

// Supported quiz types.
const (
	QuizTypeMultipleChoice QuizType = "multiple_choice"
	QuizTypeTrueFalse      QuizType = "true_false"
	QuizTypeFillBlank      QuizType = "fill_blank"
	QuizTypeMixed          QuizType = "mixed"
)

// Common validation errors for QuizAttempt
var (
	ErrEmptyQuizAttemptID     = errors.New("quiz attempt ID cannot be empty")
	ErrEmptyQuizAttemptUserID = errors.New("quiz attempt user ID cannot be empty")
	ErrEmptyQuizAttemptSetID  = errors.New("quiz attempt study set ID cannot be empty")
	ErrInvalidQuizScore       = errors.New("quiz score must be between 0 and the total question count")
	ErrInvalidQuizTotal       = errors.New("quiz total questions must be positive")
	ErrInvalidQuizType        = errors.New("invalid quiz type")
)

// QuizAttempt records one completed quiz over a study set.
type QuizAttempt struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	StudySetID     uuid.UUID `json:"study_set_id"`
	QuizType       QuizType  `json:"quiz_type"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTakenSecs  int       `json:"time_taken_seconds"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NewQuizAttempt creates a new QuizAttempt record.
// Returns an error if validation fails.
func NewQuizAttempt(
	userID, studySetID uuid.UUID,
	quizType QuizType,
	score, totalQuestions, timeTakenSecs int,
) (*QuizAttempt, error) {
	attempt := &QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		StudySetID:     studySetID,
		QuizType:       quizType,
		Score:          score,
		TotalQuestions: totalQuestions,
		TimeTakenSecs:  timeTakenSecs,
		CompletedAt:    time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the QuizAttempt has valid data.
func (a *QuizAttempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyQuizAttemptID
	}

	if a.UserID == uuid.Nil {
		return ErrEmptyQuizAttemptUserID
	}

	if a.StudySetID == uuid.Nil {
		return ErrEmptyQuizAttemptSetID
	}

	if !isValidQuizType(a.QuizType) {
		return ErrInvalidQuizType
	}

	if a.TotalQuestions <= 0 {
		return ErrInvalidQuizTotal
	}

	if a.Score < 0 || a.Score > a.TotalQuestions {
		return ErrInvalidQuizScore
	}

	return nil
}

func isValidQuizType(t QuizType) bool {
	switch t {
	case QuizTypeMultipleChoice, QuizTypeTrueFalse, QuizTypeFillBlank, QuizTypeMixed:
		return true
	default:
		return false
	}
}

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/assistant"
	"github.com/quizlight/quizlight-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// Study set structures

// FlashcardPayload is one flashcard inside a create or edit request.
type FlashcardPayload struct {
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back"  validate:"required,min=1"`
}

// CreateStudySetRequest defines the payload for creating a study set.
type CreateStudySetRequest struct {
	Title       string             `json:"title"       validate:"required,min=1,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	IsPublic    bool               `json:"is_public"`
	Flashcards  []FlashcardPayload `json:"flashcards"  validate:"dive"`
}

// UpdateStudySetRequest defines the payload for the replace-all edit of a
// study set: metadata plus the complete new flashcard list.
type UpdateStudySetRequest struct {
	Title       string             `json:"title"       validate:"required,min=1,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	IsPublic    bool               `json:"is_public"`
	Flashcards  []FlashcardPayload `json:"flashcards"  validate:"dive"`
}

// StudySetResponse is a study set with its flashcards.
type StudySetResponse struct {
	*domain.StudySet
	Flashcards []*domain.Flashcard `json:"flashcards,omitempty"`
	CardCount  int                 `json:"card_count"`
}

// Assistant structures

// AnswerRequest defines the payload for the study-set answer endpoint.
type AnswerRequest struct {
	Question string `json:"question"   validate:"required,min=1,max=2000"`
	UseWeb   bool   `json:"use_web"`
}

// AnswerResponse carries the composed answer. Note and Details are present
// only when the generative backend failed and the lexical fallback answered.
type AnswerResponse struct {
	Answer  string             `json:"answer"`
	Sources []assistant.Source `json:"sources"`
	Note    string             `json:"note,omitempty"`
	Details string             `json:"details,omitempty"`
}

// Bookmark structures

// StarMessageRequest defines the payload for bookmarking an assistant answer.
type StarMessageRequest struct {
	StudySetID     uuid.UUID `json:"study_set_id"    validate:"required"`
	MessageContent string    `json:"message_content" validate:"required,min=1"`
	Question       string    `json:"question"        validate:"required,min=1"`
}

// Quiz structures

// RecordQuizAttemptRequest defines the payload for recording a quiz result.
type RecordQuizAttemptRequest struct {
	StudySetID     uuid.UUID `json:"study_set_id"       validate:"required"`
	QuizType       string    `json:"quiz_type"          validate:"required,oneof=multiple_choice true_false fill_blank mixed"`
	Score          int       `json:"score"              validate:"gte=0"`
	TotalQuestions int       `json:"total_questions"    validate:"required,gt=0"`
	TimeTakenSecs  int       `json:"time_taken_seconds" validate:"gte=0"`
}

// Reminder structures

// CreateReminderRequest defines the payload for scheduling a study reminder.
type CreateReminderRequest struct {
	StudySetID   uuid.UUID `json:"study_set_id"  validate:"required"`
	Title        string    `json:"title"         validate:"required,min=1,max=200"`
	ReminderTime time.Time `json:"reminder_time" validate:"required"`
	Frequency    string    `json:"frequency"     validate:"required,oneof=once daily weekly monthly"`
}

// SetReminderActiveRequest toggles a reminder on or off.
type SetReminderActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Import / generation structures

// ImportStudySetRequest defines the payload for importing a study set from
// interchange data. Title is required because CSV and TXT payloads carry
// none of their own; for JSON it overrides the embedded title when set.
type ImportStudySetRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Format      string `json:"format"      validate:"omitempty,oneof=csv json txt text"`
	Data        string `json:"data"        validate:"required"`
}

// GenerateFlashcardsRequest defines the payload for deriving draft
// flashcards from pasted study notes.
type GenerateFlashcardsRequest struct {
	Text string `json:"text" validate:"required,min=1,max=100000"`
}

// GenerateFlashcardsResponse carries the generated draft cards.
type GenerateFlashcardsResponse struct {
	Flashcards []FlashcardPayload `json:"flashcards"`
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/store"
)

// QuizHandler handles quiz attempt API requests.
type QuizHandler struct {
	quizStore     store.QuizAttemptStore
	studySetStore store.StudySetStore
	validator     *validator.Validate
}

// NewQuizHandler creates a new QuizHandler with the given dependencies.
func NewQuizHandler(
	quizStore store.QuizAttemptStore,
	studySetStore store.StudySetStore,
) *QuizHandler {
	return &QuizHandler{
		quizStore:     quizStore,
		studySetStore: studySetStore,
		validator:     validator.New(),
	}
}

// Record handles POST /api/quiz-attempts.
func (h *QuizHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req RecordQuizAttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.studySetStore.GetByID(r.Context(), req.StudySetID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	attempt, err := domain.NewQuizAttempt(
		userID,
		req.StudySetID,
		domain.QuizType(req.QuizType),
		req.Score,
		req.TotalQuestions,
		req.TimeTakenSecs,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid quiz attempt data: "+err.Error())
		return
	}

	if err := h.quizStore.Create(r.Context(), attempt); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, attempt)
}

// History handles GET /api/quiz-attempts?limit=N.
func (h *QuizHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	attempts, err := h.quizStore.ListByUser(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list quiz attempts", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, attempts)
}

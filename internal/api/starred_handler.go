package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/store"
)

// StarredHandler handles bookmarked-answer API requests.
type StarredHandler struct {
	starredStore  store.StarredMessageStore
	studySetStore store.StudySetStore
	validator     *validator.Validate
}

// NewStarredHandler creates a new StarredHandler with the given dependencies.
func NewStarredHandler(
	starredStore store.StarredMessageStore,
	studySetStore store.StudySetStore,
) *StarredHandler {
	return &StarredHandler{
		starredStore:  starredStore,
		studySetStore: studySetStore,
		validator:     validator.New(),
	}
}

// Star handles POST /api/starred-messages. The set title is denormalized
// into the bookmark at star time.
func (h *StarredHandler) Star(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req StarMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Ownership check doubles as the title lookup.
	set, err := h.studySetStore.GetByID(r.Context(), req.StudySetID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	starred, err := domain.NewStarredMessage(
		userID, set.ID, req.MessageContent, req.Question, set.Title)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid bookmark data: "+err.Error())
		return
	}

	if err := h.starredStore.Create(r.Context(), starred); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, starred)
}

// List handles GET /api/starred-messages.
func (h *StarredHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	messages, err := h.starredStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list starred messages", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// Unstar handles DELETE /api/starred-messages/{id}.
func (h *StarredHandler) Unstar(w http.ResponseWriter, r *http.Request) {
	userID, starredID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.starredStore.Delete(r.Context(), starredID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/store"
)

// ReminderHandler handles study reminder API requests.
type ReminderHandler struct {
	reminderStore store.ReminderStore
	studySetStore store.StudySetStore
	validator     *validator.Validate
}

// NewReminderHandler creates a new ReminderHandler with the given dependencies.
func NewReminderHandler(
	reminderStore store.ReminderStore,
	studySetStore store.StudySetStore,
) *ReminderHandler {
	return &ReminderHandler{
		reminderStore: reminderStore,
		studySetStore: studySetStore,
		validator:     validator.New(),
	}
}

// Create handles POST /api/reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateReminderRequest
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

	reminder, err := domain.NewReminder(
		userID,
		req.StudySetID,
		req.Title,
		req.ReminderTime,
		domain.ReminderFrequency(req.Frequency),
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reminder data: "+err.Error())
		return
	}

	if err := h.reminderStore.Create(r.Context(), reminder); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reminder)
}

// List handles GET /api/reminders.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	reminders, err := h.reminderStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list reminders", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reminders)
}

// SetActive handles PATCH /api/reminders/{id}.
func (h *ReminderHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SetReminderActiveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.reminderStore.SetActive(r.Context(), reminderID, userID, *req.IsActive); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/reminders/{id}.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, reminderID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reminderStore.Delete(r.Context(), reminderID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/export"
	"github.com/quizlight/quizlight-api/internal/generate"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/store"
)

// ExportHandler handles study set export, import, and draft-card generation.
type ExportHandler struct {
	db             *sql.DB
	studySetStore  store.StudySetStore
	flashcardStore store.FlashcardStore
	validator      *validator.Validate
}

// NewExportHandler creates a new ExportHandler with the given dependencies.
func NewExportHandler(
	db *sql.DB,
	studySetStore store.StudySetStore,
	flashcardStore store.FlashcardStore,
) *ExportHandler {
	return &ExportHandler{
		db:             db,
		studySetStore:  studySetStore,
		flashcardStore: flashcardStore,
		validator:      validator.New(),
	}
}

// Export handles GET /api/study-sets/{id}/export?format=csv|json|txt,
// serving the set as a file download.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unsupported export format")
		return
	}

	set, err := h.studySetStore.GetByID(r.Context(), setID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.flashcardStore.ListForOwner(r.Context(), setID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	payload, err := export.Export(set, cards, format)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to export study set", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(set.Title, format)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write export payload",
			"error", err.Error())
	}
}

// Import handles POST /api/study-sets/import: a new study set built from
// interchange data, written with its cards in one transaction.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req ImportStudySetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unsupported import format")
		return
	}

	imported, err := export.Import([]byte(req.Data), format)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	description := req.Description
	if description == "" {
		description = imported.Description
	}

	set, err := domain.NewStudySet(userID, req.Title, description, false)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid study set data: "+err.Error())
		return
	}

	payloads := make([]FlashcardPayload, 0, len(imported.Cards))
	for _, card := range imported.Cards {
		payloads = append(payloads, FlashcardPayload{Front: card.Front, Back: card.Back})
	}
	cards, err := buildCards(set.ID, payloads)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard data: "+err.Error())
		return
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.studySetStore.WithTx(tx).Create(ctx, set); err != nil {
			return err
		}
		return h.flashcardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to import study set", err)
		return
	}

	log.Info("study set imported",
		"study_set_id", set.ID,
		"format", string(format),
		"card_count", len(cards))

	shared.RespondWithJSON(w, r, http.StatusCreated, StudySetResponse{
		StudySet:   set,
		Flashcards: cards,
		CardCount:  len(cards),
	})
}

// Generate handles POST /api/flashcards/generate: draft cards derived from
// pasted study notes. Nothing is persisted; the client reviews the drafts
// and saves them through the normal create or edit flow.
func (h *ExportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	drafts := generate.FromText(req.Text)
	payloads := make([]FlashcardPayload, 0, len(drafts))
	for _, draft := range drafts {
		payloads = append(payloads, FlashcardPayload{Front: draft.Front, Back: draft.Back})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFlashcardsResponse{
		Flashcards: payloads,
	})
}

package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/store"
)

// StudySetHandler handles study set and flashcard API requests.
type StudySetHandler struct {
	db             *sql.DB
	studySetStore  store.StudySetStore
	flashcardStore store.FlashcardStore
	validator      *validator.Validate
}

// NewStudySetHandler creates a new StudySetHandler with the given
// dependencies. The *sql.DB is used to open transactions for multi-statement
// writes (create-with-cards, replace-all edit).
func NewStudySetHandler(
	db *sql.DB,
	studySetStore store.StudySetStore,
	flashcardStore store.FlashcardStore,
) *StudySetHandler {
	return &StudySetHandler{
		db:             db,
		studySetStore:  studySetStore,
		flashcardStore: flashcardStore,
		validator:      validator.New(),
	}
}

// buildCards turns request payloads into domain flashcards for the set,
// numbering positions by payload order.
func buildCards(studySetID uuid.UUID, payloads []FlashcardPayload) ([]*domain.Flashcard, error) {
	cards := make([]*domain.Flashcard, 0, len(payloads))
	for i, p := range payloads {
		card, err := domain.NewFlashcard(studySetID, p.Front, p.Back, i)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Create handles POST /api/study-sets. The set and its initial flashcards
// are written in one transaction.
func (h *StudySetHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateStudySetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := domain.NewStudySet(userID, req.Title, req.Description, req.IsPublic)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid study set data: "+err.Error())
		return
	}

	cards, err := buildCards(set.ID, req.Flashcards)
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
			"Failed to create study set", err)
		return
	}

	log.Info("study set created",
		"study_set_id", set.ID,
		"card_count", len(cards))

	shared.RespondWithJSON(w, r, http.StatusCreated, StudySetResponse{
		StudySet:   set,
		Flashcards: cards,
		CardCount:  len(cards),
	})
}

// List handles GET /api/study-sets.
func (h *StudySetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	sets, err := h.studySetStore.ListByOwner(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list study sets", err)
		return
	}

	responses := make([]StudySetResponse, 0, len(sets))
	for _, set := range sets {
		cards, err := h.flashcardStore.ListForOwner(r.Context(), set.ID, userID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to list study sets", err)
			return
		}
		responses = append(responses, StudySetResponse{
			StudySet:  set,
			CardCount: len(cards),
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /api/study-sets/{id}, returning the set with its cards.
func (h *StudySetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
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

	shared.RespondWithJSON(w, r, http.StatusOK, StudySetResponse{
		StudySet:   set,
		Flashcards: cards,
		CardCount:  len(cards),
	})
}

// Update handles PUT /api/study-sets/{id}: a replace-all edit. The metadata
// update, old-card delete, and new-card insert land in one transaction, so a
// failed edit never leaves a set half-replaced.
func (h *StudySetHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateStudySetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := h.studySetStore.GetByID(r.Context(), setID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := set.Update(req.Title, req.Description, req.IsPublic); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid study set data: "+err.Error())
		return
	}

	cards, err := buildCards(set.ID, req.Flashcards)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard data: "+err.Error())
		return
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.studySetStore.WithTx(tx).Update(ctx, set); err != nil {
			return err
		}
		fcStore := h.flashcardStore.WithTx(tx)
		if err := fcStore.DeleteBySet(ctx, set.ID); err != nil {
			return err
		}
		return fcStore.CreateMultiple(ctx, cards)
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("study set updated",
		"study_set_id", set.ID,
		"card_count", len(cards))

	shared.RespondWithJSON(w, r, http.StatusOK, StudySetResponse{
		StudySet:   set,
		Flashcards: cards,
		CardCount:  len(cards),
	})
}

// Delete handles DELETE /api/study-sets/{id}.
func (h *StudySetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.studySetStore.Delete(r.Context(), setID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/assistant"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/redact"
	"github.com/quizlight/quizlight-api/internal/store"
)

// ChatHandler handles the study-set chat endpoints: answering questions and
// managing the persisted conversation history.
type ChatHandler struct {
	composer         *assistant.Composer
	flashcardStore   store.FlashcardStore
	chatMessageStore store.ChatMessageStore
	validator        *validator.Validate
}

// NewChatHandler creates a new ChatHandler with the given dependencies.
func NewChatHandler(
	composer *assistant.Composer,
	flashcardStore store.FlashcardStore,
	chatMessageStore store.ChatMessageStore,
) *ChatHandler {
	return &ChatHandler{
		composer:         composer,
		flashcardStore:   flashcardStore,
		chatMessageStore: chatMessageStore,
		validator:        validator.New(),
	}
}

// Answer handles POST /api/study-sets/{id}/answer. It loads the owner's
// flashcards, runs the answer pipeline, persists both conversation turns,
// and returns the composed answer. Upstream LLM or search failures never
// fail the request; the pipeline degrades to its lexical fallback.
func (h *ChatHandler) Answer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Ownership check and card load in one query; no upstream call happens
	// for a set the caller does not own.
	cards, err := h.flashcardStore.ListForOwner(r.Context(), setID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pairs := make([]assistant.Pair, 0, len(cards))
	for _, card := range cards {
		pairs = append(pairs, assistant.Pair{
			Question: card.FrontText,
			Answer:   card.BackText,
		})
	}

	result := h.composer.Answer(r.Context(), req.Question, pairs, req.UseWeb)

	log.Info("answer composed",
		"study_set_id", setID,
		"mode", string(result.Mode),
		"source_count", len(result.Sources),
		"web_requested", req.UseWeb)

	h.persistTurns(r, userID, setID, req.Question, result.Answer)

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Answer:  result.Answer,
		Sources: result.Sources,
		Note:    result.Note,
		Details: result.Details,
	})
}

// persistTurns saves the question and answer to the chat history.
// History persistence is best-effort: a storage failure is logged but the
// already-composed answer is still returned.
func (h *ChatHandler) persistTurns(r *http.Request, userID, setID uuid.UUID, question, answer string) {
	log := logger.FromContext(r.Context())

	userTurn, err := domain.NewChatMessage(userID, setID, domain.ChatRoleUser, question)
	if err == nil {
		err = h.chatMessageStore.Create(r.Context(), userTurn)
	}
	if err != nil {
		log.Warn("failed to persist user chat turn",
			"error", redact.Error(err),
			"study_set_id", setID)
		return
	}

	assistantTurn, err := domain.NewChatMessage(userID, setID, domain.ChatRoleAssistant, answer)
	if err == nil {
		err = h.chatMessageStore.Create(r.Context(), assistantTurn)
	}
	if err != nil {
		log.Warn("failed to persist assistant chat turn",
			"error", redact.Error(err),
			"study_set_id", setID)
	}
}

// History handles GET /api/study-sets/{id}/messages.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	messages, err := h.chatMessageStore.ListBySet(r.Context(), userID, setID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load chat history", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// ClearHistory handles DELETE /api/study-sets/{id}/messages.
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatMessageStore.DeleteBySet(r.Context(), userID, setID); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to clear chat history", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

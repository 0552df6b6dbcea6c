package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quizlight/quizlight-api/internal/api/shared"
	"github.com/quizlight/quizlight-api/internal/domain"
)

func TestExportHandlerExport(t *testing.T) {
	userID := uuid.New()

	set, err := domain.NewStudySet(userID, "AP Euro: Unit 3!", "", false)
	if err != nil {
		t.Fatal(err)
	}
	card, err := domain.NewFlashcard(set.ID, "Who was Napoleon?", "Emperor of the French", 0)
	if err != nil {
		t.Fatal(err)
	}

	handler := NewExportHandler(nil,
		newFakeStudySetStore(set),
		&fakeFlashcardStore{cards: []*domain.Flashcard{card}})

	t.Run("csv download with attachment filename", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Export(rr, pathRequest(http.MethodGet,
			"/api/study-sets/"+set.ID.String()+"/export?format=csv", set.ID.String(), userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
		if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "ap_euro_unit_3.csv") {
			t.Errorf("unexpected content disposition %q", cd)
		}
		if body := rr.Body.String(); !strings.Contains(body, "Who was Napoleon?") {
			t.Errorf("card missing from export: %q", body)
		}
	})

	t.Run("default format is csv", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Export(rr, pathRequest(http.MethodGet,
			"/api/study-sets/"+set.ID.String()+"/export", set.ID.String(), userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Export(rr, pathRequest(http.MethodGet,
			"/api/study-sets/"+set.ID.String()+"/export?format=xlsx", set.ID.String(), userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("another user's set is a 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Export(rr, pathRequest(http.MethodGet,
			"/api/study-sets/"+set.ID.String()+"/export?format=csv", set.ID.String(), uuid.New()))

		if rr.Code != http.StatusNotFound {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
		}
	})
}

func TestExportHandlerGenerate(t *testing.T) {
	handler := NewExportHandler(nil, newFakeStudySetStore(), &fakeFlashcardStore{})
	userID := uuid.New()

	notes := "The mitochondria is the powerhouse of the cell and produces most of its ATP. " +
		"Photosynthesis in chloroplasts converts light energy into chemical energy."

	body, _ := json.Marshal(GenerateFlashcardsRequest{Text: notes})
	req := postJSON("/api/flashcards/generate", string(body))
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

	rr := httptest.NewRecorder()
	handler.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body: %s",
			rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp GenerateFlashcardsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(resp.Flashcards) == 0 {
		t.Fatal("expected draft cards from substantial notes")
	}
	for _, card := range resp.Flashcards {
		if card.Front == "" || card.Back == "" {
			t.Errorf("draft card with an empty side: %+v", card)
		}
	}
}

func TestQuizHandlerRecord(t *testing.T) {
	userID := uuid.New()

	set, err := domain.NewStudySet(userID, "Biology 101", "", false)
	if err != nil {
		t.Fatal(err)
	}

	handler := NewQuizHandler(&fakeQuizStore{}, newFakeStudySetStore(set))

	t.Run("valid attempt is recorded", func(t *testing.T) {
		body, _ := json.Marshal(RecordQuizAttemptRequest{
			StudySetID:     set.ID,
			QuizType:       string(domain.QuizTypeMultipleChoice),
			Score:          7,
			TotalQuestions: 10,
			TimeTakenSecs:  120,
		})
		req := postJSON("/api/quiz-attempts", string(body))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

		rr := httptest.NewRecorder()
		handler.Record(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("handler returned wrong status code: got %v want %v, body: %s",
				rr.Code, http.StatusCreated, rr.Body.String())
		}

		var attempt domain.QuizAttempt
		if err := json.NewDecoder(rr.Body).Decode(&attempt); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if attempt.Score != 7 || attempt.TotalQuestions != 10 {
			t.Errorf("unexpected attempt payload: %+v", attempt)
		}
	})

	t.Run("attempt against another user's set is a 404", func(t *testing.T) {
		body, _ := json.Marshal(RecordQuizAttemptRequest{
			StudySetID:     set.ID,
			QuizType:       string(domain.QuizTypeMixed),
			Score:          1,
			TotalQuestions: 5,
		})
		req := postJSON("/api/quiz-attempts", string(body))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New()))

		rr := httptest.NewRecorder()
		handler.Record(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
		}
	})
}

func TestQuizHandlerHistory(t *testing.T) {
	userID := uuid.New()
	handler := NewQuizHandler(&fakeQuizStore{}, newFakeStudySetStore())

	t.Run("negative limit is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/quiz-attempts?limit=-1", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

		rr := httptest.NewRecorder()
		handler.History(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/quiz-attempts", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

		rr := httptest.NewRecorder()
		handler.History(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
	})
}

// fakeQuizStore is a QuizAttemptStore stub for handler tests.
type fakeQuizStore struct {
	attempts []*domain.QuizAttempt
}

func (f *fakeQuizStore) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeQuizStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.QuizAttempt, error) {
	return f.attempts, nil
}

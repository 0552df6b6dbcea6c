package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizlight/quizlight-api/internal/config"
	"github.com/quizlight/quizlight-api/internal/domain"
	"github.com/quizlight/quizlight-api/internal/service/auth"
	"github.com/quizlight/quizlight-api/internal/store"
)

// fakeUserStore is an in-memory UserStore that hashes passwords with the
// minimum bcrypt cost, mirroring the real store's contract.
type fakeUserStore struct {
	byEmail   map[string]*domain.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hash)
	user.Password = ""
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthHandler(t *testing.T, users store.UserStore) *AuthHandler {
	t.Helper()

	authConfig := config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-long-enough-for-hs256",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
	jwtService, err := auth.NewJWTService(authConfig)
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}
	return NewAuthHandler(users, jwtService, auth.NewBcryptVerifier(), authConfig)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("successful registration returns tokens", func(t *testing.T) {
		handler := newTestAuthHandler(t, newFakeUserStore())

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON("/api/auth/register",
			`{"email": "new@example.com", "password": "a-long-enough-password"}`))

		if rr.Code != http.StatusCreated {
			t.Fatalf("handler returned wrong status code: got %v want %v, body: %s",
				rr.Code, http.StatusCreated, rr.Body.String())
		}

		var resp AuthResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if resp.UserID == uuid.Nil {
			t.Error("expected a user ID in the response")
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("expected both tokens in the response")
		}
		if resp.ExpiresAt == "" {
			t.Error("expected an expiry timestamp in the response")
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		users := newFakeUserStore()
		handler := newTestAuthHandler(t, users)

		first := httptest.NewRecorder()
		handler.Register(first, postJSON("/api/auth/register",
			`{"email": "dup@example.com", "password": "a-long-enough-password"}`))
		if first.Code != http.StatusCreated {
			t.Fatalf("setup registration failed: %v", first.Code)
		}

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON("/api/auth/register",
			`{"email": "dup@example.com", "password": "a-long-enough-password"}`))

		if rr.Code != http.StatusConflict {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusConflict)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		handler := newTestAuthHandler(t, newFakeUserStore())

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON("/api/auth/register",
			`{"email": "new@example.com", "password": "short"}`))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		handler := newTestAuthHandler(t, newFakeUserStore())

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON("/api/auth/register", `{not json`))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
		}
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	users := newFakeUserStore()
	handler := newTestAuthHandler(t, users)

	setup := httptest.NewRecorder()
	handler.Register(setup, postJSON("/api/auth/register",
		`{"email": "login@example.com", "password": "a-long-enough-password"}`))
	if setup.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %v", setup.Code)
	}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Login(rr, postJSON("/api/auth/login",
			`{"email": "login@example.com", "password": "a-long-enough-password"}`))

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}

		var resp AuthResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("expected both tokens in the response")
		}
	})

	t.Run("wrong password returns the same 401 as an unknown email", func(t *testing.T) {
		wrongPassword := httptest.NewRecorder()
		handler.Login(wrongPassword, postJSON("/api/auth/login",
			`{"email": "login@example.com", "password": "not-the-password"}`))

		unknownEmail := httptest.NewRecorder()
		handler.Login(unknownEmail, postJSON("/api/auth/login",
			`{"email": "nobody@example.com", "password": "a-long-enough-password"}`))

		if wrongPassword.Code != http.StatusUnauthorized {
			t.Errorf("wrong password: got %v want %v", wrongPassword.Code, http.StatusUnauthorized)
		}
		if unknownEmail.Code != http.StatusUnauthorized {
			t.Errorf("unknown email: got %v want %v", unknownEmail.Code, http.StatusUnauthorized)
		}
		if wrongPassword.Body.String() != unknownEmail.Body.String() {
			t.Error("expected identical bodies so account existence cannot be probed")
		}
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	users := newFakeUserStore()
	handler := newTestAuthHandler(t, users)

	setup := httptest.NewRecorder()
	handler.Register(setup, postJSON("/api/auth/register",
		`{"email": "refresh@example.com", "password": "a-long-enough-password"}`))
	if setup.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %v", setup.Code)
	}
	var registered AuthResponse
	if err := json.NewDecoder(setup.Body).Decode(&registered); err != nil {
		t.Fatalf("failed to decode setup response: %v", err)
	}

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		body, _ := json.Marshal(RefreshTokenRequest{RefreshToken: registered.RefreshToken})

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON("/api/auth/refresh", string(body)))

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v, body: %s",
				rr.Code, http.StatusOK, rr.Body.String())
		}

		var resp RefreshTokenResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("expected a fresh token pair")
		}
	})

	t.Run("access token is rejected as a refresh token", func(t *testing.T) {
		body, _ := json.Marshal(RefreshTokenRequest{RefreshToken: registered.AccessToken})

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON("/api/auth/refresh", string(body)))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage refresh token returns 401", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON("/api/auth/refresh",
			`{"refresh_token": "not.a.jwt"}`))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
		}
	})
}

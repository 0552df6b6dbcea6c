package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizlight/quizlight-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-at-least-32-characters",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		assert.ErrorContains(t, err, "at least 32 characters")
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(ctx, refresh)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateRefreshToken(ctx, access)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestTokenValidationFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t)
		_, err := svc.ValidateToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()
		ctxBg := context.Background()
		svc := newTestService(t)

		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "another-secret-that-is-32-chars-or-more"
		other, err := NewJWTService(otherCfg)
		require.NoError(t, err)

		token, err := other.GenerateToken(ctxBg, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctxBg, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired access token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t)
		userID := uuid.New()

		issued := time.Now().Add(-24 * time.Hour)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expired refresh token uses the refresh sentinel", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t)
		userID := uuid.New()

		issued := time.Now().Add(-30 * 24 * time.Hour)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = time.Now
		_, err = svc.ValidateRefreshToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("clock skew within leeway is tolerated", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t)
		userID := uuid.New()

		// Issued 61 minutes ago: past the 60-minute lifetime but inside
		// the 2-minute leeway.
		issued := time.Now().Add(-61 * time.Minute)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	t.Run("matching password", func(t *testing.T) {
		t.Parallel()
		hash := mustHash(t, "correct-horse-battery-staple")
		assert.NoError(t, verifier.Compare(hash, "correct-horse-battery-staple"))
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		hash := mustHash(t, "correct-horse-battery-staple")
		assert.Error(t, verifier.Compare(hash, "incorrect-horse"))
	})
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/quizlight/quizlight-api/internal/store"
)

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mapError(nil))
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		t.Parallel()
		err := mapError(&pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: "users_email_key"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.ErrorContains(t, err, "users_email_key")
	})

	t.Run("foreign key violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		err := mapError(&pgconn.PgError{Code: pgForeignKeyViolationCode})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		err := mapError(&pgconn.PgError{Code: pgCheckViolationCode})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("wrapped pg errors still map", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("insert failed: %w",
			&pgconn.PgError{Code: pgUniqueViolationCode})
		assert.ErrorIs(t, mapError(wrapped), store.ErrDuplicate)
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Equal(t, orig, mapError(orig))
	})
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("zero rows yields the sentinel", func(t *testing.T) {
		t.Parallel()
		err := checkRowsAffected(fakeResult{rows: 0}, store.ErrReminderNotFound)
		assert.ErrorIs(t, err, store.ErrReminderNotFound)
	})

	t.Run("affected rows succeed", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, checkRowsAffected(fakeResult{rows: 1}, store.ErrReminderNotFound))
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		t.Parallel()
		err := checkRowsAffected(fakeResult{err: errors.New("driver gone")}, store.ErrReminderNotFound)
		assert.ErrorContains(t, err, "driver gone")
		assert.NotErrorIs(t, err, store.ErrReminderNotFound)
	})
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgUniqueViolationCode}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgForeignKeyViolationCode}))
	assert.False(t, isUniqueViolation(errors.New("plain")))

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: pgForeignKeyViolationCode}))
	assert.False(t, isForeignKeyViolation(nil))
}

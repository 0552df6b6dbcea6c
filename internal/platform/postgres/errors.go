package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quizlight/quizlight-api/internal/store"
)

// PostgreSQL error codes relevant to the stores.
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
	pgNotNullViolationCode    = "23502"
)

// isUniqueViolation checks if the given error is a unique constraint
// violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a foreign key
// violation, such as inserting a flashcard for a deleted study set.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// mapError translates driver-level constraint errors to the store package's
// sentinel errors, leaving everything else untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolationCode:
			return fmt.Errorf("%w: %s", store.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolationCode, pgCheckViolationCode, pgNotNullViolationCode:
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		}
	}
	return err
}

// checkRowsAffected maps a zero-row UPDATE or DELETE result to the given
// not-found sentinel. Ownership-scoped statements rely on this: a row the
// caller does not own matches zero rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

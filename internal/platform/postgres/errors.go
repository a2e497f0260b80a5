package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/store"
)

// SQLSTATE codes the profile queries can raise.
const (
	uniqueViolationCode           = "23505"
	checkViolationCode            = "23514"
	notNullViolationCode          = "23502"
	invalidTextRepresentationCode = "22P02" // e.g. a malformed UUID
)

// Check constraints on the profiles table. Postgres names unnamed column
// constraints <table>_<column>_check.
const (
	nameCheckConstraint         = "profiles_name_check"
	audioCounterCheckConstraint = "profiles_total_correct_audio_check"
	hintCounterCheckConstraint  = "profiles_total_correct_hint_check"
)

// MapError translates a driver error into the store's error vocabulary,
// keeping the original error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case checkViolationCode:
		switch pgErr.ConstraintName {
		case nameCheckConstraint:
			return fmt.Errorf("%w: %w: name rejected by %s: %v",
				store.ErrInvalidEntity, domain.ErrValidation, pgErr.ConstraintName, err)
		case audioCounterCheckConstraint, hintCounterCheckConstraint:
			return fmt.Errorf("%w: counter rejected by %s: %v",
				store.ErrUpdateFailed, pgErr.ConstraintName, err)
		}
		return fmt.Errorf("%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: %s is required: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	case invalidTextRepresentationCode:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}

// CheckRowsAffected returns notFound when a statement such as a profile
// delete touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

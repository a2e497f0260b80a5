package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: sql.ErrNoRows, wantErr: store.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", sql.ErrNoRows), wantErr: store.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, wantErr: store.ErrDuplicate},
		{
			name:    "check violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "profiles_name_check"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "name check violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: nameCheckConstraint},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "counter check violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: hintCounterCheckConstraint},
			wantErr: store.ErrUpdateFailed,
		},
		{
			name:    "unknown check violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "profiles_avatar_check"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "not null violation",
			err:     &pgconn.PgError{Code: notNullViolationCode, ColumnName: "avatar"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "invalid text representation",
			err:     &pgconn.PgError{Code: invalidTextRepresentationCode},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.wantErr)
		})
	}

	assert.NoError(t, MapError(nil))

	other := errors.New("connection reset")
	assert.Same(t, other, MapError(other), "unmapped errors pass through unchanged")

	assert.Contains(t, MapError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "profiles_name_check"}).Error(),
		"profiles_name_check")
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, errors.New("unsupported") }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	require.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrProfileNotFound))

	err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrProfileNotFound)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	assert.True(t, store.IsNotFoundError(err))

	err = CheckRowsAffected(fakeResult{err: errors.New("driver")}, store.ErrProfileNotFound)
	assert.ErrorContains(t, err, "failed to get rows affected")

	assert.Error(t, CheckRowsAffected(nil, store.ErrProfileNotFound))
}

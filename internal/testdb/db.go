//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/hececiz/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection setup and schema migration.
const TestTimeout = 10 * time.Second

// Open connects to the test database, applies migrate, and closes the pool
// when the test ends. It skips the test when no URL is configured outside CI.
func Open(t *testing.T, migrate func(ctx context.Context, db *sql.DB) error) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if isCIEnvironment() {
			t.Fatalf("no test database configured: set %s", EnvTestDatabaseURL)
		}
		t.Skipf("%s not set, skipping database test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable at %s: %s", redact.String(url), redact.Error(err))
	}

	if migrate != nil {
		require.NoError(t, migrate(ctx, db), "failed to migrate test database")
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can write freely without seeing each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using it carry the integration build tag and read the database URL
// from HECE_TEST_DATABASE_URL (or DATABASE_URL). Outside CI a missing URL
// skips the test; in CI it fails, so a misconfigured pipeline cannot pass
// silently.
//
// Each test should run inside WithTx so its writes are rolled back:
//
//	db := testdb.Open(t, func(ctx context.Context, db *sql.DB) error {
//		return postgres.Migrate(ctx, db, "up", nil)
//	})
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewPostgresProfileStore(tx, nil)
//		...
//	})
package testdb

// Package postgres implements store.ProfileStore on PostgreSQL through
// database/sql and the pgx driver.
//
// The schema is embedded and applied with goose. Progress increments are a
// single UPDATE ... RETURNING statement, so concurrent increments on the same
// profile never lose an update.
package postgres

package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		content, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- +goose Up", e.Name())
		assert.Contains(t, string(content), "-- +goose Down", e.Name())
	}

	first, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+entries[0].Name())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(first), "CREATE TABLE profiles"))
}

func TestIsMigrationCommand(t *testing.T) {
	for _, c := range []string{"up", "down", "status", "version", "reset", "redo"} {
		assert.True(t, IsMigrationCommand(c), c)
	}
	assert.False(t, IsMigrationCommand("create"))
	assert.False(t, IsMigrationCommand(""))
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "fix", nil)
	assert.ErrorContains(t, err, "unknown migration command")
}

package database

import (
	"context"
	"path/filepath"
	"testing"

	"resumequiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestRunMigrations checks the users table is created exactly once
func TestRunMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	applied, err := db.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_users.sql"}, applied)

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "users").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "users", name)

	applied, err = db.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

// TestUniqueUsernameConstraint checks the storage-level fallback for duplicate registrations
func TestUniqueUsernameConstraint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	_, err := db.RunMigrations(ctx)
	require.NoError(t, err)

	id, err := db.ExecReturningID(ctx, "INSERT INTO users (username, password_hash) VALUES (?, ?)", "alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = db.ExecReturningID(ctx, "INSERT INTO users (username, password_hash) VALUES (?, ?)", "alice", "other")
	require.Error(t, err)
	assert.True(t, db.Dialect.IsUniqueViolation(err))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInitializeWithUnknownType(t *testing.T) {
	_, err := InitializeWithConfig(config.DatabaseConfig{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

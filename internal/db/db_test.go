package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableNames(t *testing.T, conn *sqlx.DB) []string {
	t.Helper()
	var tables []string
	err := conn.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('event_records', 'customer_payment_status') ORDER BY name`)
	require.NoError(t, err)
	return tables
}

func TestInitAndMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	conn, err := Init(ctx, "sqlite", path)
	require.NoError(t, err)
	defer Close(conn)

	require.NoError(t, RunMigrations(ctx, conn.DB, "sqlite"))
	assert.Equal(t, []string{"customer_payment_status", "event_records"}, tableNames(t, conn))

	// already applied
	require.NoError(t, RunMigrations(ctx, conn.DB, "sqlite"))

	require.NoError(t, MigrateDown(ctx, conn.DB, "sqlite"))
	assert.Equal(t, []string{"event_records"}, tableNames(t, conn))
}

func TestGetDialect(t *testing.T) {
	dialect, err := getDialect("pgx")
	require.NoError(t, err)
	assert.Equal(t, "postgres", string(dialect))

	_, err = getDialect("clickhouse")
	assert.Error(t, err)
}

func TestEnsureSQLiteDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ensureSQLiteDir("file:"+filepath.Join(dir, "a", "b.db")+"?_pragma=journal_mode(WAL)"))
	assert.DirExists(t, filepath.Join(dir, "a"))
	assert.NoError(t, ensureSQLiteDir(":memory:"))
}

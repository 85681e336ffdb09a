package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/migrations"
	"github.com/pkordes/planner/testutil"
)

// tableQueries tells, per dialect, how to ask whether a table exists.
var tableQueries = map[goose.Dialect]string{
	goose.DialectSQLite3: `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`,
	goose.DialectPostgres: `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`,
}

// TestMigrations_SQLite runs the up/down round-trip against a temp-file
// SQLite database. It never skips.
func TestMigrations_SQLite(t *testing.T) {
	roundTrip(t, testutil.NewSQLiteUnmigrated(t), goose.DialectSQLite3)
}

// TestMigrations_Postgres runs the same round-trip against TEST_DATABASE_URL.
// Skipped when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	roundTrip(t, testutil.NewSQLDB(t), goose.DialectPostgres)
}

// roundTrip applies every migration, checks the tables exist, rolls
// everything back, and checks they are gone.
func roundTrip(t *testing.T, db *sql.DB, dialect goose.Dialect) {
	t.Helper()

	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against a
	// shared Postgres test DB. Reset first so this test is order-independent.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assertTablePresence(t, db, dialect, "device_bindings", true)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assertTablePresence(t, db, dialect, "device_bindings", false)
}

func assertTablePresence(t *testing.T, db *sql.DB, dialect goose.Dialect, table string, shouldExist bool) {
	t.Helper()

	var exists bool
	err := db.QueryRowContext(context.Background(), tableQueries[dialect], table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}

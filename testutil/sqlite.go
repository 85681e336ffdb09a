package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/planner/migrations"
)

// NewSQLite opens a SQLite database in a per-test temp directory and applies
// all migrations. Unlike the Postgres helpers it never skips: the driver is
// pure Go and needs no running server.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db := NewSQLiteUnmigrated(t)
	if err := migrations.Up(context.Background(), db, goose.DialectSQLite3); err != nil {
		t.Fatalf("testutil.NewSQLite: migrate: %v", err)
	}
	return db
}

// NewSQLiteUnmigrated is NewSQLite without the migrations, for tests that
// drive goose themselves.
func NewSQLiteUnmigrated(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "planner.db")
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("testutil.NewSQLite: open: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

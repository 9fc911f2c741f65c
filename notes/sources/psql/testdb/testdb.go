// Package testdb opens throwaway SQLite-backed databases for tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"notes/notes/config"
	"notes/notes/sources/psql"

	"gorm.io/gorm"
)

// New returns a migrated database in a per-test temp directory. It is closed
// when the test finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "notes.db"),
	}
	db, err := psql.NewDatabase(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(db.Close)
	return db.DB
}

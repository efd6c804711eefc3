package store

import (
	"database/sql"
	"testing"
)

// NewTestDB opens a migrated in-memory database that is closed when the
// test finishes. This is only intended for use in tests.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}

	if err := migrate(sqlDB); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &DB{sqlDB}
}

package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an in-memory database with the orders schema applied,
// closed automatically when the test finishes. Open caps the pool at one
// connection, so the memory database is shared across test goroutines.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("applying test schema: %v", err)
	}
	return database
}

package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/focusquest/internal/db"
)

// NewTestDB returns a migrated in-memory database with the default progress
// row seeded. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteTestHelper opens a second connection to a database written by the
// code under test so tests can assert on raw rows.
type SQLiteTestHelper struct {
	DB     *sql.DB
	DBPath string
}

func OpenSQLite(t *testing.T, dbPath string) *SQLiteTestHelper {
	t.Helper()

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open %s: %v", dbPath, err)
	}

	helper := &SQLiteTestHelper{DB: db, DBPath: dbPath}
	t.Cleanup(func() {
		_ = helper.DB.Close()
	})
	return helper
}

// Exec executes a SQL statement
func (h *SQLiteTestHelper) Exec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := h.DB.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v", err)
	}
}

// RowExists checks if a row exists
func (h *SQLiteTestHelper) RowExists(t *testing.T, table string, where string, args ...interface{}) bool {
	t.Helper()
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	if err := h.DB.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	return count > 0
}

// Count returns the count of rows in a table
func (h *SQLiteTestHelper) Count(t *testing.T, table string) int {
	t.Helper()
	var count int
	if err := h.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	return count
}

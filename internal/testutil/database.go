package testutil

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"crm/internal/infrastructure/migration"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/crm_test?parseTime=true&multiStatements=true"

// SetupTestDB opens the integration database (CRM_TEST_DSN, or a local
// crm_test schema) and skips the test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("CRM_TEST_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables applies the embedded up migrations. They are idempotent.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	files, err := fs.Glob(migration.Files(), "sql/*.up.sql")
	if err != nil {
		t.Fatalf("listing migrations: %v", err)
	}

	for _, name := range files {
		script, err := fs.ReadFile(migration.Files(), name)
		if err != nil {
			t.Fatalf("reading migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			t.Fatalf("applying migration %s: %v", name, err)
		}
	}
}

// CleanupTestDB empties every CRM table, children first, and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderProducts", "Orders", "Products", "Customers"}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE family (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			base_currency VARCHAR(3) NOT NULL DEFAULT 'EUR'
		);

		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			family_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			type VARCHAR(9) NOT NULL CHECK (type IN ('asset', 'liability')),
			currency VARCHAR(3) NOT NULL,
			is_hidden BOOLEAN DEFAULT FALSE NOT NULL,
			FOREIGN KEY(family_id) REFERENCES family(id) ON DELETE CASCADE
		);

		CREATE TABLE account_balance (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			amount_minor BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(account_id) REFERENCES account(id) ON DELETE CASCADE
		);

		CREATE INDEX idx_account_balance_account_date ON account_balance(account_id, date);

		CREATE TABLE networth_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			family_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			assets_minor BIGINT NOT NULL,
			liabilities_minor BIGINT NOT NULL,
			net_minor BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			calculated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(family_id) REFERENCES family(id) ON DELETE CASCADE,
			CONSTRAINT unique_family_date UNIQUE (family_id, date)
		);

		CREATE TABLE fx_rate (
			from_currency VARCHAR(3) NOT NULL,
			to_currency VARCHAR(3) NOT NULL,
			rate TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (from_currency, to_currency)
		);

		CREATE TABLE app_setting (
			key VARCHAR(100) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"networth_snapshot",
		"account_balance",
		"account",
		"family",
		"fx_rate",
		"app_setting",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

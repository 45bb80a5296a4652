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

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE investment_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			market VARCHAR(20) NOT NULL,
			brokerage VARCHAR(100),
			quantity FLOAT NOT NULL,
			unit_price FLOAT NOT NULL,
			fees FLOAT NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL,
			note VARCHAR(200),
			created_at DATETIME NOT NULL
		);
		CREATE INDEX idx_investment_event_owner_date ON investment_event (owner_id, date);

		CREATE TABLE forex_observation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			domestic_amount FLOAT NOT NULL,
			rate FLOAT NOT NULL,
			foreign_amount FLOAT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX idx_forex_observation_owner ON forex_observation (owner_id);

		CREATE TABLE stock_price (
			symbol VARCHAR(20) NOT NULL PRIMARY KEY,
			price FLOAT NOT NULL,
			last_updated DATETIME NOT NULL
		);

		CREATE TABLE mortgage (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			start_date DATE NOT NULL,
			original_principal FLOAT NOT NULL,
			term_years INTEGER NOT NULL,
			has_mrta BOOLEAN NOT NULL DEFAULT FALSE,
			mrta_original_amount FLOAT,
			mrta_rate FLOAT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX idx_mortgage_owner ON mortgage (owner_id);

		CREATE TABLE mortgage_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			mortgage_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(20) NOT NULL,
			value FLOAT NOT NULL,
			balance_after FLOAT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (mortgage_id) REFERENCES mortgage (id) ON DELETE CASCADE
		);
		CREATE INDEX idx_mortgage_event_mortgage_date ON mortgage_event (mortgage_id, date);

		CREATE TABLE balance_account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			classification VARCHAR(50) NOT NULL,
			name VARCHAR(100) NOT NULL,
			base_value FLOAT NOT NULL,
			asset_type VARCHAR(20),
			liquidity_tier VARCHAR(20),
			obligation_type VARCHAR(30) DEFAULT 'Standard',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX idx_balance_account_owner ON balance_account (owner_id);

		CREATE TABLE balance_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			date DATETIME NOT NULL,
			old_value FLOAT NOT NULL,
			new_value FLOAT NOT NULL,
			adjustment FLOAT NOT NULL,
			contra_account_id VARCHAR(36),
			contra_account_name VARCHAR(100),
			description VARCHAR(200),
			FOREIGN KEY (account_id) REFERENCES balance_account (id) ON DELETE CASCADE
		);
		CREATE INDEX idx_balance_history_account ON balance_history (account_id, date);

		CREATE TABLE cash_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			category VARCHAR(50) NOT NULL,
			description VARCHAR(200) NOT NULL,
			amount FLOAT NOT NULL,
			account_id VARCHAR(36),
			created_at DATETIME NOT NULL,
			FOREIGN KEY (account_id) REFERENCES balance_account (id)
		);
		CREATE INDEX idx_cash_transaction_owner ON cash_transaction (owner_id);
		CREATE INDEX idx_cash_transaction_account ON cash_transaction (account_id);

		CREATE TABLE portfolio_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			owner_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			invested FLOAT NOT NULL,
			market_value FLOAT NOT NULL,
			created_at DATETIME NOT NULL,
			CONSTRAINT unique_owner_snapshot_date UNIQUE (owner_id, date)
		);
	`

	_, err := db.Exec(schema)
	return err
}

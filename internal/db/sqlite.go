package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the embedded SQLite database at path.
// Callers run InitSchema once after opening.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for concurrent readers; busy_timeout so interleaved writers retry
	// instead of failing immediately on the file lock.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := database.Exec(p); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return database, nil
}

// InitSchema creates all tables idempotently. There is no migration
// versioning; every table uses IF NOT EXISTS semantics.
func InitSchema(database *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'broker',
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ginners (
			ginner_id TEXT PRIMARY KEY,
			ginner_name TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			iban TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			ntn TEXT NOT NULL DEFAULT '',
			stn TEXT NOT NULL DEFAULT '',
			bank_address TEXT NOT NULL DEFAULT '',
			contact_person TEXT NOT NULL DEFAULT '',
			station TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS mills (
			mill_id TEXT PRIMARY KEY,
			mill_name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			owner_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS contracts (
			contract_id TEXT PRIMARY KEY,
			ginner_id TEXT NOT NULL DEFAULT '',
			mill_id TEXT NOT NULL DEFAULT '',
			total_bales INTEGER NOT NULL DEFAULT 0,
			price_per_batch REAL NOT NULL DEFAULT 0,
			total_amount REAL NOT NULL DEFAULT 0,
			commission_percentage REAL NOT NULL DEFAULT 0,
			date_created TEXT NOT NULL DEFAULT '',
			delivery_notes TEXT NOT NULL DEFAULT '',
			payment_notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			delivery_id TEXT PRIMARY KEY,
			contract_id TEXT NOT NULL,
			amount REAL NOT NULL DEFAULT 0,
			total_bales INTEGER NOT NULL DEFAULT 0,
			factory_weight REAL NOT NULL DEFAULT 0,
			mill_weight REAL NOT NULL DEFAULT 0,
			truck_number TEXT NOT NULL DEFAULT '',
			driver_contact TEXT NOT NULL DEFAULT '',
			departure_date TEXT NOT NULL DEFAULT '',
			delivery_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			payment_id TEXT PRIMARY KEY,
			contract_id TEXT NOT NULL,
			total_amount REAL NOT NULL DEFAULT 0,
			amount_paid REAL NOT NULL DEFAULT 0,
			total_bales INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			contract_id TEXT NOT NULL,
			deal_id TEXT NOT NULL,
			amount_paid REAL NOT NULL DEFAULT 0,
			date_paid TEXT NOT NULL DEFAULT '',
			mills_due_to TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (contract_id, deal_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_contract ON deliveries(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_contract ON payments(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_contract ON ledger_entries(contract_id)`,
	}

	for _, stmt := range statements {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

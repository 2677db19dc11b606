// Package database provides database connection management and schema setup.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/doughub/doughub/internal/config"
)

// Open opens the SQLite database at the configured path, creating parent
// directories as needed.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect(%s) > %w", cfg.Path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("db.Exec(pragma foreign_keys) > %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// Migrate creates the schema when it does not exist yet.
func Migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS source_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			source_type TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'inbox',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_item_id INTEGER NOT NULL REFERENCES source_items(id),
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			fact_content TEXT NOT NULL,
			state INTEGER NOT NULL DEFAULT 0,
			stability REAL NOT NULL DEFAULT 0,
			difficulty REAL NOT NULL DEFAULT 0,
			elapsed_days INTEGER NOT NULL DEFAULT 0,
			scheduled_days INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			lapses INTEGER NOT NULL DEFAULT 0,
			due_date TIMESTAMP NOT NULL,
			last_review TIMESTAMP,
			activation_status TEXT NOT NULL DEFAULT 'dormant',
			activation_tier TEXT NOT NULL DEFAULT 'user_manual',
			activation_reasons TEXT NOT NULL DEFAULT '[]',
			activated_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS review_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			card_id INTEGER NOT NULL REFERENCES cards(id),
			rating INTEGER NOT NULL,
			response_time_ms INTEGER,
			interval_days INTEGER NOT NULL,
			state_after INTEGER NOT NULL,
			reviewed_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_due
			ON cards(activation_status, due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_review_logs_card
			ON review_logs(card_id, reviewed_at)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("db.Exec(migrate) > %w", err)
		}
	}
	return nil
}

package store

import (
	"database/sql"
	"fmt"
)

// Migrate brings the schema up to date, tracking the version in
// PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v < 1 {
		// ---- Schema v1: postings + runs ----
		for _, stmt := range []string{`
CREATE TABLE IF NOT EXISTS postings (
  url TEXT PRIMARY KEY,
  company TEXT NOT NULL,
  role TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL,
  deadline TEXT NOT NULL,
  status TEXT NOT NULL,
  tags TEXT NOT NULL DEFAULT '[]',
  level TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_postings_status
ON postings(status);`, `
CREATE INDEX IF NOT EXISTS idx_postings_company
ON postings(company);`, `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  fetched INTEGER NOT NULL DEFAULT 0,
  accepted INTEGER NOT NULL DEFAULT 0,
  rejected INTEGER NOT NULL DEFAULT 0,
  uniq INTEGER NOT NULL DEFAULT 0,
  added INTEGER NOT NULL DEFAULT 0,
  reopened INTEGER NOT NULL DEFAULT 0,
  updated INTEGER NOT NULL DEFAULT 0,
  closed INTEGER NOT NULL DEFAULT 0,
  failed_sources TEXT NOT NULL DEFAULT '[]',
  error TEXT NOT NULL DEFAULT ''
);`, `
CREATE INDEX IF NOT EXISTS idx_runs_started_at
ON runs(started_at);`,
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("migrate v1: %w", err)
			}
		}
		if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
			return err
		}
	}

	return tx.Commit()
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS worktime_entries (
		id           TEXT PRIMARY KEY,
		kind         TEXT NOT NULL
		             CHECK(kind IN ('auxiliary','workpiece','qiandiao')),
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','submitted','failed')),
		craft_code   TEXT NOT NULL DEFAULT '',
		craft_name   TEXT NOT NULL DEFAULT '',
		machine_code TEXT NOT NULL DEFAULT '',
		mould_code   TEXT NOT NULL DEFAULT '',
		part_code    TEXT NOT NULL DEFAULT '',
		order_type   TEXT NOT NULL DEFAULT '',
		order_id     TEXT NOT NULL DEFAULT '',
		pline_code   TEXT NOT NULL DEFAULT '',
		operator     TEXT NOT NULL DEFAULT '',
		begin_at     TEXT NOT NULL,
		end_at       TEXT NOT NULL,
		labor_min    INTEGER NOT NULL DEFAULT 0 CHECK(labor_min >= 0),
		note         TEXT NOT NULL DEFAULT '',
		last_error   TEXT NOT NULL DEFAULT '',
		submitted_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_status ON worktime_entries(status)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_kind ON worktime_entries(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_begin ON worktime_entries(begin_at)`,

	`CREATE TABLE IF NOT EXISTS quality_reports (
		id                TEXT PRIMARY KEY,
		order_no          TEXT NOT NULL UNIQUE,
		mould_code        TEXT NOT NULL DEFAULT '',
		reason_code       TEXT NOT NULL DEFAULT '',
		dept_id           TEXT NOT NULL DEFAULT '',
		need_tech_support INTEGER NOT NULL DEFAULT 0,
		description       TEXT NOT NULL DEFAULT '',
		images            TEXT NOT NULL DEFAULT '[]',
		remedy            TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'draft'
		                  CHECK(status IN ('draft','submitted')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS report_sequences (
		day      TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS session_state (
		id                 TEXT PRIMARY KEY DEFAULT 'default',
		token              TEXT NOT NULL DEFAULT '',
		username           TEXT NOT NULL DEFAULT '',
		encrypted_password TEXT NOT NULL DEFAULT '',
		remember_me        INTEGER NOT NULL DEFAULT 0,
		updated_at         TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the single session row
	`INSERT OR IGNORE INTO session_state (id) VALUES ('default')`,

	// Count submission attempts per entry
	`ALTER TABLE worktime_entries ADD COLUMN attempts INTEGER NOT NULL DEFAULT 0`,
}

package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		client              TEXT NOT NULL DEFAULT '',
		planned             INTEGER NOT NULL DEFAULT 0,
		start_date          TEXT NOT NULL DEFAULT '',
		due_date            TEXT NOT NULL DEFAULT '',
		due_confirmed       INTEGER NOT NULL DEFAULT 0,
		phases              TEXT NOT NULL DEFAULT '{}',
		assigned            TEXT NOT NULL DEFAULT '{}',
		segment_workers     TEXT NOT NULL DEFAULT '{}',
		frozen_tasks        TEXT NOT NULL DEFAULT '[]',
		segment_starts      TEXT NOT NULL DEFAULT '{}',
		segment_start_hours TEXT NOT NULL DEFAULT '{}',
		blocked             INTEGER NOT NULL DEFAULT 0,
		color               TEXT NOT NULL DEFAULT '',
		auto_hours          TEXT NOT NULL DEFAULT '{}',
		kanban_fields       TEXT NOT NULL DEFAULT '{}',
		end_date            TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS added_workers (
		name       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS worker_renames (
		old_name TEXT PRIMARY KEY,
		new_name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS worker_order (
		name     TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS inactive_workers (
		name TEXT PRIMARY KEY
	)`,

	`CREATE TABLE IF NOT EXISTS worker_notes (
		worker TEXT PRIMARY KEY,
		note   TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS manual_unplanned (
		id     TEXT PRIMARY KEY,
		worker TEXT NOT NULL,
		day    TEXT NOT NULL,
		hours  REAL NOT NULL,
		note   TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS hour_overrides (
		worker TEXT PRIMARY KEY,
		hours  REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_overrides (
		worker TEXT NOT NULL,
		day    TEXT NOT NULL,
		hours  REAL NOT NULL,
		PRIMARY KEY (worker, day)
	)`,

	`CREATE TABLE IF NOT EXISTS global_caps (
		day   TEXT PRIMARY KEY,
		hours REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vacations (
		id        TEXT PRIMARY KEY,
		worker    TEXT NOT NULL,
		start_day TEXT NOT NULL,
		end_day   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_vacations_worker ON vacations(worker)`,

	`CREATE TABLE IF NOT EXISTS conflicts (
		key     TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		client  TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dismissed_conflicts (
		key TEXT PRIMARY KEY
	)`,
}

// Package sqlite provides SQLite-based persistent storage for habit21.
// It is the reference collaborator for the achievement engine: it stores
// habits, their daily entries and unlocked achievement records.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/habit21.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "habit21.db")
	dsn := "file:" + dbPath +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habits (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			position   INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id, position)`,

		// One row per (habit, date): the engine relies on this.
		`CREATE TABLE IF NOT EXISTS habit_entries (
			habit_id  INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
			date      TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT 0,
			UNIQUE(habit_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON habit_entries(date)`,

		// Unlocked achievements; viewed/notified are owned by the UI layer.
		`CREATE TABLE IF NOT EXISTS achievements (
			user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			achievement_key TEXT NOT NULL,
			unlocked_at     INTEGER NOT NULL,
			viewed          BOOLEAN NOT NULL DEFAULT 0,
			notified        BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, achievement_key)
		)`,

		// One-time startup steps, replacing marker files.
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			run_id     TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

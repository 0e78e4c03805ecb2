package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					amount REAL NOT NULL,
					ts DATETIME NOT NULL,
					category TEXT NOT NULL
				)`,
				`CREATE INDEX idx_expenses_ts ON expenses(ts)`,
				`CREATE INDEX idx_expenses_category ON expenses(category)`,

				`CREATE TABLE IF NOT EXISTS trash (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					amount REAL NOT NULL,
					ts DATETIME NOT NULL,
					category TEXT NOT NULL,
					deleted_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_trash_deleted_at ON trash(deleted_at)`,

				`CREATE TABLE IF NOT EXISTS categories (
					name TEXT PRIMARY KEY,
					color TEXT NOT NULL,
					position INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_categories_position ON categories(position)`,

				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value REAL NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default categories and settings",
		Up: func(tx *sql.Tx) error {
			seed := []struct {
				name  string
				color string
			}{
				{"日常", "#0ea5e9"},
				{"吃饭", "#22c55e"},
				{"数码", "#f97316"},
				{"额外", "#a78bfa"},
			}
			for i, cat := range seed {
				_, err := tx.Exec(`
					INSERT INTO categories (name, color, position)
					VALUES (?, ?, ?)
					ON CONFLICT(name) DO NOTHING`,
					cat.name, cat.color, i)
				if err != nil {
					return fmt.Errorf("failed to seed category %s: %w", cat.name, err)
				}
			}

			_, err := tx.Exec(`
				INSERT INTO settings (key, value) VALUES
					('daily_budget', 30),
					('monthly_budget', 0)
				ON CONFLICT(key) DO NOTHING`)
			if err != nil {
				return fmt.Errorf("failed to seed settings: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

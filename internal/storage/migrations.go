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
				`CREATE TABLE IF NOT EXISTS day_records (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					hash TEXT UNIQUE NOT NULL,
					instant INTEGER NOT NULL,
					date TEXT NOT NULL,
					hour INTEGER NOT NULL DEFAULT -1,
					season INTEGER NOT NULL DEFAULT 0,
					year INTEGER NOT NULL,
					month INTEGER NOT NULL,
					holiday BOOLEAN NOT NULL DEFAULT 0,
					weekday INTEGER NOT NULL DEFAULT 0,
					working_day BOOLEAN NOT NULL DEFAULT 0,
					weather INTEGER NOT NULL DEFAULT 0,
					temp REAL NOT NULL DEFAULT 0,
					atemp REAL NOT NULL DEFAULT 0,
					humidity REAL NOT NULL DEFAULT 0,
					wind_speed REAL NOT NULL DEFAULT 0,
					casual INTEGER NOT NULL DEFAULT 0,
					registered INTEGER NOT NULL DEFAULT 0,
					count INTEGER NOT NULL CHECK (count >= 0),
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_day_records_date ON day_records(date)`,
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
		Description: "Add RFM snapshots",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS rfm_snapshots (
					id TEXT PRIMARY KEY,
					label TEXT,
					range_start TEXT,
					range_end TEXT,
					source_hash TEXT NOT NULL,
					row_count INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS rfm_rows (
					snapshot_id TEXT NOT NULL,
					date TEXT NOT NULL,
					recency INTEGER NOT NULL,
					frequency INTEGER NOT NULL,
					monetary INTEGER NOT NULL,
					PRIMARY KEY (snapshot_id, date),
					FOREIGN KEY (snapshot_id) REFERENCES rfm_snapshots(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_rfm_snapshots_created ON rfm_snapshots(created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
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

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

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

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

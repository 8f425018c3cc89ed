package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
)

// SaveSnapshot stores an RFM derivation and its rows.
// A missing ID or creation time is filled in before the insert.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap *model.RFMSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	snap.RowCount = len(snap.Rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rfm_snapshots (id, label, range_start, range_end, source_hash, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Label, formatBound(snap.Range.Start), formatBound(snap.Range.End),
		snap.SourceHash, snap.RowCount, snap.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rfm_rows (snapshot_id, date, recency, frequency, monetary)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range snap.Rows {
		if _, err := stmt.ExecContext(ctx, snap.ID, row.Date.Format(model.DateLayout),
			row.Recency, row.Frequency, row.Monetary); err != nil {
			return fmt.Errorf("failed to insert row for %s: %w", row.Date.Format(model.DateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// GetSnapshot loads a snapshot and its rows by ID.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, id string) (*model.RFMSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, range_start, range_end, source_hash, row_count, created_at
		FROM rfm_snapshots WHERE id = ?
	`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, recency, frequency, monetary
		FROM rfm_rows WHERE snapshot_id = ? ORDER BY date
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snap.Rows = make([]model.RFMRow, 0, snap.RowCount)
	for rows.Next() {
		var (
			r    model.RFMRow
			date string
		)
		if err := rows.Scan(&date, &r.Recency, &r.Frequency, &r.Monetary); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if r.Date, err = time.Parse(model.DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: stored date %q", common.ErrDatabaseCorrupted, date)
		}
		snap.Rows = append(snap.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return snap, nil
}

// ListSnapshots returns snapshot headers, newest first. Rows are not loaded.
// A limit of zero or less returns every snapshot.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context, limit int) ([]model.RFMSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, label, range_start, range_end, source_hash, row_count, created_at
		FROM rfm_snapshots ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.RFMSnapshot
	for rows.Next() {
		snap, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		snapshots = append(snapshots, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot and its rows.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM rfm_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("snapshot %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*model.RFMSnapshot, error) {
	var (
		snap              model.RFMSnapshot
		label, start, end sql.NullString
	)
	err := row.Scan(&snap.ID, &label, &start, &end, &snap.SourceHash, &snap.RowCount, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	snap.Label = label.String

	if snap.Range.Start, err = parseBound(start.String); err != nil {
		return nil, err
	}
	if snap.Range.End, err = parseBound(end.String); err != nil {
		return nil, err
	}
	return &snap, nil
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: stored range bound %q", common.ErrDatabaseCorrupted, s)
	}
	return t, nil
}

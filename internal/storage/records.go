package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
)

const recordColumns = `instant, date, hour, season, year, month, holiday, weekday,
	working_day, weather, temp, atemp, humidity, wind_speed, casual, registered, count, hash`

// SaveRecords stores records, skipping any whose hash is already present.
// It returns the number of rows inserted.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.DayRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecords(records); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO day_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, rec := range records {
		if rec.Hash == "" {
			rec.Hash = rec.GenerateHash()
		}

		result, execErr := stmt.ExecContext(ctx,
			rec.Instant,
			rec.Date.Format(model.DateLayout),
			rec.Hour,
			int(rec.Season),
			rec.Year,
			int(rec.Month),
			rec.Holiday,
			rec.Weekday,
			rec.WorkingDay,
			int(rec.Weather),
			rec.Temp,
			rec.ATemp,
			rec.Humidity,
			rec.WindSpeed,
			rec.Casual,
			rec.Registered,
			rec.Count,
			rec.Hash,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", rec.Instant, execErr)
		}
		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit records: %w", err)
	}
	return inserted, nil
}

// GetRecords returns the records within rng ordered by date and hour.
func (s *SQLiteStorage) GetRecords(ctx context.Context, rng model.DateRange) ([]model.DayRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if !rng.Start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, rng.Start.Format(model.DateLayout))
	}
	if !rng.End.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, rng.End.Format(model.DateLayout))
	}

	query := `SELECT ` + recordColumns + ` FROM day_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date, hour, instant"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DayRecord
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (model.DayRecord, error) {
	var (
		rec             model.DayRecord
		date            string
		season, weather int
		month           int
	)
	err := rows.Scan(
		&rec.Instant,
		&date,
		&rec.Hour,
		&season,
		&rec.Year,
		&month,
		&rec.Holiday,
		&rec.Weekday,
		&rec.WorkingDay,
		&weather,
		&rec.Temp,
		&rec.ATemp,
		&rec.Humidity,
		&rec.WindSpeed,
		&rec.Casual,
		&rec.Registered,
		&rec.Count,
		&rec.Hash,
	)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Date, err = time.Parse(model.DateLayout, date)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("%w: stored date %q", common.ErrDatabaseCorrupted, date)
	}
	rec.Season = model.Season(season)
	rec.Weather = model.Weather(weather)
	rec.Month = model.Month(month)
	return rec, nil
}

// GetRecordCount returns the number of stored records.
func (s *SQLiteStorage) GetRecordCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM day_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// GetDateBounds returns the earliest and latest stored record dates.
func (s *SQLiteStorage) GetDateBounds(ctx context.Context) (time.Time, time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, time.Time{}, err
	}

	var minDate, maxDate sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MIN(date), MAX(date) FROM day_records`).Scan(&minDate, &maxDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to get date bounds: %w", err)
	}
	if !minDate.Valid || !maxDate.Valid {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: no records", common.ErrNotFound)
	}

	first, err := time.Parse(model.DateLayout, minDate.String)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: stored date %q", common.ErrDatabaseCorrupted, minDate.String)
	}
	last, err := time.Parse(model.DateLayout, maxDate.String)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: stored date %q", common.ErrDatabaseCorrupted, maxDate.String)
	}
	return first, last, nil
}

// DeleteRecords removes every stored record and returns how many were deleted.
func (s *SQLiteStorage) DeleteRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM day_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}

// Package testutil provides shared fixtures for pedal tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/service"
	"github.com/Veraticus/pedal/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database seeded with records.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T, records ...model.DayRecord) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(records) > 0 {
		if _, err := store.SaveRecords(ctx, records); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustRecords returns every stored record in rng or fails the test.
func (db *TestDB) MustRecords(rng model.DateRange) []model.DayRecord {
	db.t.Helper()
	records, err := db.Storage.GetRecords(context.Background(), rng)
	if err != nil {
		db.t.Fatalf("failed to load records: %v", err)
	}
	return records
}

// DailyRecords builds one record per day from start with the given counts.
// Seasons follow the calendar quarter and the weather is always clear.
func DailyRecords(start time.Time, counts ...int) []model.DayRecord {
	records := make([]model.DayRecord, len(counts))
	for i, count := range counts {
		date := model.CalendarDate(start.AddDate(0, 0, i))
		records[i] = model.DayRecord{
			Instant:    i + 1,
			Date:       date,
			Hour:       model.NoHour,
			Season:     model.Season((int(date.Month())-1)/3 + 1),
			Year:       date.Year(),
			Month:      model.Month(date.Month()),
			Weekday:    int(date.Weekday()),
			Weather:    model.WeatherClear,
			Registered: count,
			Count:      count,
		}
		records[i].Hash = records[i].GenerateHash()
	}
	return records
}

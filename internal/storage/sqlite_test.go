package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create one record per day starting at 2011-01-01.
func createTestRecords(count int) []model.DayRecord {
	base := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.DayRecord, count)
	for i := 0; i < count; i++ {
		date := base.AddDate(0, 0, i)
		records[i] = model.DayRecord{
			Instant:    i + 1,
			Date:       date,
			Hour:       model.NoHour,
			Season:     model.SeasonSpring,
			Year:       date.Year(),
			Month:      model.Month(date.Month()),
			Weekday:    int(date.Weekday()),
			Weather:    model.WeatherClear,
			Temp:       0.3,
			ATemp:      0.28,
			Humidity:   0.6,
			WindSpeed:  0.15,
			Casual:     100 + i,
			Registered: 900 + i,
			Count:      1000 + 2*i,
			WorkingDay: date.Weekday() != time.Saturday && date.Weekday() != time.Sunday,
		}
		records[i].Hash = records[i].GenerateHash()
	}
	return records
}

func TestSQLiteStorage_SaveRecords(t *testing.T) {
	tests := []struct {
		setup    func(*testing.T, *SQLiteStorage, context.Context)
		name     string
		records  []model.DayRecord
		want     int
		wantRows int
		wantErr  bool
	}{
		{
			name:     "save new records",
			records:  createTestRecords(3),
			want:     3,
			wantRows: 3,
		},
		{
			name:    "duplicates are skipped",
			records: createTestRecords(5),
			setup: func(t *testing.T, s *SQLiteStorage, ctx context.Context) {
				t.Helper()
				if _, err := s.SaveRecords(ctx, createTestRecords(3)); err != nil {
					t.Fatalf("Failed to seed records: %v", err)
				}
			},
			want:     2,
			wantRows: 5,
		},
		{
			name: "missing hash is generated",
			records: func() []model.DayRecord {
				recs := createTestRecords(2)
				recs[0].Hash = ""
				recs[1].Hash = ""
				return recs
			}(),
			want:     2,
			wantRows: 2,
		},
		{
			name:    "empty slice",
			records: []model.DayRecord{},
			wantErr: true,
		},
		{
			name: "negative count",
			records: func() []model.DayRecord {
				recs := createTestRecords(1)
				recs[0].Count = -1
				return recs
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			if tt.setup != nil {
				tt.setup(t, store, ctx)
			}

			got, err := store.SaveRecords(ctx, tt.records)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("SaveRecords() inserted = %d, want %d", got, tt.want)
			}

			count, err := store.GetRecordCount(ctx)
			if err != nil {
				t.Fatalf("GetRecordCount() error = %v", err)
			}
			if count != tt.wantRows {
				t.Errorf("GetRecordCount() = %d, want %d", count, tt.wantRows)
			}
		})
	}
}

func TestSQLiteStorage_GetRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	records := createTestRecords(10)
	// Insert in reverse to check ordering.
	reversed := make([]model.DayRecord, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}
	if _, err := store.SaveRecords(ctx, reversed); err != nil {
		t.Fatalf("Failed to save records: %v", err)
	}

	day := func(d int) time.Time { return time.Date(2011, 1, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		rng       model.DateRange
		wantFirst time.Time
		wantLen   int
		wantErr   bool
	}{
		{name: "all records", rng: model.DateRange{}, wantLen: 10, wantFirst: day(1)},
		{name: "closed range", rng: model.DateRange{Start: day(3), End: day(5)}, wantLen: 3, wantFirst: day(3)},
		{name: "open end", rng: model.DateRange{Start: day(8)}, wantLen: 3, wantFirst: day(8)},
		{name: "open start", rng: model.DateRange{End: day(2)}, wantLen: 2, wantFirst: day(1)},
		{name: "single day", rng: model.DateRange{Start: day(4), End: day(4)}, wantLen: 1, wantFirst: day(4)},
		{name: "outside data", rng: model.DateRange{Start: day(20), End: day(25)}, wantLen: 0},
		{name: "inverted", rng: model.DateRange{Start: day(5), End: day(3)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetRecords(ctx, tt.rng)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateRange) {
					t.Errorf("GetRecords() error = %v, want ErrInvalidDateRange", err)
				}
				return
			}
			if len(got) != tt.wantLen {
				t.Fatalf("GetRecords() returned %d records, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			if !got[0].Date.Equal(tt.wantFirst) {
				t.Errorf("first date = %s, want %s", got[0].Date, tt.wantFirst)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Date.Before(got[i-1].Date) {
					t.Errorf("records not ordered at index %d", i)
				}
			}
		})
	}
}

func TestSQLiteStorage_GetRecordsRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := createTestRecords(1)[0]
	want.Season = model.SeasonWinter
	want.Weather = model.WeatherLight
	want.Holiday = true
	want.Hour = 17
	want.Hash = want.GenerateHash()

	if _, err := store.SaveRecords(ctx, []model.DayRecord{want}); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}

	got, err := store.GetRecords(ctx, model.DateRange{})
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetRecords() returned %d records, want 1", len(got))
	}
	if !got[0].Date.Equal(want.Date) {
		t.Errorf("Date = %s, want %s", got[0].Date, want.Date)
	}
	got[0].Date = want.Date
	if got[0] != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got[0], want)
	}
}

func TestSQLiteStorage_GetDateBounds(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, _, err := store.GetDateBounds(ctx)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("GetDateBounds() on empty store error = %v, want ErrNotFound", err)
	}

	if _, err := store.SaveRecords(ctx, createTestRecords(31)); err != nil {
		t.Fatalf("Failed to save records: %v", err)
	}

	first, last, err := store.GetDateBounds(ctx)
	if err != nil {
		t.Fatalf("GetDateBounds() error = %v", err)
	}
	if want := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC); !first.Equal(want) {
		t.Errorf("first = %s, want %s", first, want)
	}
	if want := time.Date(2011, 1, 31, 0, 0, 0, 0, time.UTC); !last.Equal(want) {
		t.Errorf("last = %s, want %s", last, want)
	}
}

func TestSQLiteStorage_DeleteRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.SaveRecords(ctx, createTestRecords(4)); err != nil {
		t.Fatalf("Failed to save records: %v", err)
	}

	deleted, err := store.DeleteRecords(ctx)
	if err != nil {
		t.Fatalf("DeleteRecords() error = %v", err)
	}
	if deleted != 4 {
		t.Errorf("DeleteRecords() = %d, want 4", deleted)
	}

	count, err := store.GetRecordCount(ctx)
	if err != nil {
		t.Fatalf("GetRecordCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("GetRecordCount() = %d after delete, want 0", count)
	}
}

func TestNewSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if store.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", store.Path())
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(\"\") error = %v, want ErrEmptyString", err)
	}
}

package storage

import (
	"context"
	"testing"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", version, ExpectedSchemaVersion)
	}

	// A second run is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, name := range []string{"idx_day_records_date", "idx_rfm_snapshots_created"} {
		var indexCount int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='index' AND name=?
		`, name).Scan(&indexCount)
		if err != nil {
			t.Fatalf("Failed to check index %s: %v", name, err)
		}
		if indexCount != 1 {
			t.Errorf("index %s was not created", name)
		}
	}
}

func TestMigrate_RejectsNegativeCount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.db.Exec(`
		INSERT INTO day_records (hash, instant, date, year, month, count)
		VALUES ('h', 1, '2011-01-01', 2011, 1, -5)
	`)
	if err == nil {
		t.Error("expected CHECK constraint to reject a negative count")
	}
}

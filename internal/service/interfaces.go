// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Record operations
	SaveRecords(ctx context.Context, records []model.DayRecord) (int, error)
	GetRecords(ctx context.Context, rng model.DateRange) ([]model.DayRecord, error)
	GetRecordCount(ctx context.Context) (int, error)
	GetDateBounds(ctx context.Context) (time.Time, time.Time, error)
	DeleteRecords(ctx context.Context) (int, error)

	// Snapshot operations
	SaveSnapshot(ctx context.Context, snap *model.RFMSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*model.RFMSnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.RFMSnapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// ReportWriter publishes a finished report somewhere outside the terminal.
type ReportWriter interface {
	Write(ctx context.Context, report *analysis.Report) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

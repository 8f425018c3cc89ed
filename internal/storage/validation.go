// Package storage provides the data persistence layer for the pedal application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pedal/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = model.ErrInvalidDateRange
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a slice of day records.
func validateRecords(records []model.DayRecord) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: records", ErrEmptySlice)
	}

	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}
	return nil
}

// validateRecord validates a single day record.
func validateRecord(rec *model.DayRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if rec.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidRecord, rec.Count)
	}
	if rec.Hour < model.NoHour || rec.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidRecord, rec.Hour)
	}
	return nil
}

// validateSnapshot validates a snapshot before it is stored.
func validateSnapshot(snap *model.RFMSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}
	if strings.TrimSpace(snap.SourceHash) == "" {
		return fmt.Errorf("%w: missing source hash", ErrInvalidSnapshot)
	}
	if err := snap.Range.Validate(); err != nil {
		return err
	}
	return nil
}

package dataset

import (
	"time"

	"github.com/Veraticus/pedal/internal/model"
)

// Filter returns the records whose date lies within rng, preserving order.
func Filter(records []model.DayRecord, rng model.DateRange) []model.DayRecord {
	if rng.IsZero() {
		return records
	}
	out := make([]model.DayRecord, 0, len(records))
	for _, rec := range records {
		if rng.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterRows narrows an RFM table to rows within rng.
func FilterRows(rows []model.RFMRow, rng model.DateRange) []model.RFMRow {
	out := make([]model.RFMRow, 0, len(rows))
	for _, row := range rows {
		if rng.Contains(row.Date) {
			out = append(out, row)
		}
	}
	return out
}

// Bounds returns the earliest and latest record dates.
func Bounds(records []model.DayRecord) (minDate, maxDate time.Time, ok bool) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate = model.CalendarDate(records[0].Date)
	maxDate = minDate
	for _, rec := range records[1:] {
		d := model.CalendarDate(rec.Date)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, true
}

// Resolve validates rng against the records. An inverted range falls back to
// the full dataset; the returned error explains why so callers can warn.
func Resolve(records []model.DayRecord, rng model.DateRange) ([]model.DayRecord, model.DateRange, error) {
	if err := rng.Validate(); err != nil {
		return records, model.DateRange{}, err
	}
	return Filter(records, rng), rng, nil
}

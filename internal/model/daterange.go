package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when a range starts after it ends.
var ErrInvalidDateRange = errors.New("start date must not be after end date")

// DateRange is a closed interval of calendar dates. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two dates, truncating both to calendar days.
func NewDateRange(start, end time.Time) DateRange {
	var r DateRange
	if !start.IsZero() {
		r.Start = CalendarDate(start)
	}
	if !end.IsZero() {
		r.End = CalendarDate(end)
	}
	return r
}

// ParseDateRange parses two optional YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		r.Start = t
	}
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		r.End = t
	}
	return r, nil
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Validate checks that the range is not inverted.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether the calendar date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := CalendarDate(t)
	if !r.Start.IsZero() && d.Before(CalendarDate(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(CalendarDate(r.End)) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	start, end := "…", "…"
	if !r.Start.IsZero() {
		start = r.Start.Format(DateLayout)
	}
	if !r.End.IsZero() {
		end = r.End.Format(DateLayout)
	}
	return start + " to " + end
}

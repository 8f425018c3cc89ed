// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// DateLayout is the canonical calendar date format used across the application.
const DateLayout = "2006-01-02"

// NoHour marks a record that aggregates a whole day rather than a single hour.
const NoHour = -1

// DayRecord represents one preprocessed row of the bike rental dataset.
type DayRecord struct {
	Date       time.Time
	Hash       string
	Instant    int
	Hour       int
	Season     Season
	Year       int
	Month      Month
	Weekday    int
	Weather    Weather
	Temp       float64
	ATemp      float64
	Humidity   float64
	WindSpeed  float64
	Casual     int
	Registered int
	Count      int
	Holiday    bool
	WorkingDay bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (r *DayRecord) GenerateHash() string {
	data := fmt.Sprintf("%d:%s:%d:%d",
		r.Instant,
		r.Date.Format(DateLayout),
		r.Hour,
		r.Count)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Activity projects the record onto the fields the RFM builder consumes.
func (r *DayRecord) Activity() ActivityRecord {
	return ActivityRecord{Date: r.Date, Count: r.Count}
}

// Activities projects a slice of records into activity records.
func Activities(records []DayRecord) []ActivityRecord {
	out := make([]ActivityRecord, len(records))
	for i := range records {
		out[i] = records[i].Activity()
	}
	return out
}

// ActivityRecord is a single dated observation of rental volume.
type ActivityRecord struct {
	Date  time.Time
	Count int
}

// CalendarDate truncates t to midnight UTC of the same calendar day.
// The year, month and day are read in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

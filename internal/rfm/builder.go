// Package rfm derives per-day Recency, Frequency and Monetary features from activity records.
package rfm

import (
	"sort"
	"time"

	"github.com/Veraticus/pedal/internal/model"
)

const secondsPerDay = 24 * 60 * 60

// Derive groups records by calendar date and returns one row per date in
// ascending date order. Recency counts whole days back from the latest date
// in the input, frequency is the number of records on the date and monetary
// is the sum of their counts. Empty input yields an empty, non-nil result.
//
// Inputs are not validated; callers are expected to pass records with real
// dates and non-negative counts.
func Derive(records []model.ActivityRecord) []model.RFMRow {
	if len(records) == 0 {
		return []model.RFMRow{}
	}

	groups := make(map[time.Time]*model.RFMRow)
	maxDate := model.CalendarDate(records[0].Date)
	for _, rec := range records {
		d := model.CalendarDate(rec.Date)
		if d.After(maxDate) {
			maxDate = d
		}
		row, ok := groups[d]
		if !ok {
			row = &model.RFMRow{Date: d}
			groups[d] = row
		}
		row.Frequency++
		row.Monetary += rec.Count
	}

	rows := make([]model.RFMRow, 0, len(groups))
	for _, row := range groups {
		row.Recency = daysBetween(row.Date, maxDate)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows
}

// daysBetween counts whole days from one UTC midnight to another. It works on
// Unix seconds, so spans longer than a time.Duration can hold stay exact.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

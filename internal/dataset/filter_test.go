package dataset

import (
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/model"
	"github.com/stretchr/testify/assert"
)

func recordsOn(days ...int) []model.DayRecord {
	out := make([]model.DayRecord, len(days))
	for i, d := range days {
		out[i] = model.DayRecord{Date: time.Date(2011, 1, d, 0, 0, 0, 0, time.UTC), Count: d}
	}
	return out
}

func TestFilter_InclusiveBounds(t *testing.T) {
	records := recordsOn(1, 2, 3, 4, 5)
	rng := model.NewDateRange(time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2011, 1, 4, 0, 0, 0, 0, time.UTC))

	got := Filter(records, rng)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 4, got[2].Count)

	assert.Len(t, Filter(records, model.DateRange{}), 5, "open range keeps everything")
}

func TestFilterRows(t *testing.T) {
	rows := []model.RFMRow{
		{Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2011, 1, 9, 0, 0, 0, 0, time.UTC)},
	}
	got := FilterRows(rows, model.DateRange{Start: time.Date(2011, 1, 5, 0, 0, 0, 0, time.UTC)})
	assert.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Date.Day())
}

func TestBounds(t *testing.T) {
	_, _, ok := Bounds(nil)
	assert.False(t, ok)

	minDate, maxDate, ok := Bounds(recordsOn(4, 1, 9, 2))
	assert.True(t, ok)
	assert.Equal(t, 1, minDate.Day())
	assert.Equal(t, 9, maxDate.Day())
}

func TestResolve_InvertedRangeFallsBack(t *testing.T) {
	records := recordsOn(1, 2, 3)
	inverted := model.NewDateRange(time.Date(2011, 1, 3, 0, 0, 0, 0, time.UTC), time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC))

	got, rng, err := Resolve(records, inverted)
	assert.ErrorIs(t, err, model.ErrInvalidDateRange)
	assert.Len(t, got, 3)
	assert.True(t, rng.IsZero())

	got, _, err = Resolve(records, model.DateRange{End: time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC)})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

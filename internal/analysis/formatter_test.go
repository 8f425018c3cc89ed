package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIFormatter_FormatReport(t *testing.T) {
	formatter := NewCLIFormatter()

	report, err := BuildReport(fixture(), model.DateRange{}, model.DefaultVocabulary(), nil)
	require.NoError(t, err)

	tests := []struct {
		report   *Report
		name     string
		contains []string
	}{
		{
			name:     "nil report",
			report:   nil,
			contains: []string{"No report available"},
		},
		{
			name:   "full report",
			report: report,
			contains: []string{
				"Bike Rental Report",
				"Statistics",
				"Total rentals by season",
				"Spring",
				"Rental distribution by weather",
				"Clear/Partly Cloudy",
				"Average monthly rentals",
				"2011",
				"2012",
				"Jul",
			},
		},
		{
			name:     "empty selection",
			report:   &Report{Range: model.DateRange{}, Vocabulary: model.DefaultVocabulary()},
			contains: []string{"No records in the selected date range"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatter.FormatReport(tt.report)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLIFormatter_FormatMonthly_SkipsEmptyMonths(t *testing.T) {
	formatter := NewCLIFormatter()
	out := formatter.FormatMonthly(MonthlyAverages(fixture()), model.DefaultVocabulary())

	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Apr")
	assert.NotContains(t, out, "Dec")
}

func TestCLIFormatter_FormatRFM(t *testing.T) {
	formatter := NewCLIFormatter()
	day := func(d int) time.Time { return time.Date(2011, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []model.RFMRow{
		{Date: day(1), Recency: 2, Frequency: 1, Monetary: 985},
		{Date: day(2), Recency: 1, Frequency: 1, Monetary: 801},
		{Date: day(3), Recency: 0, Frequency: 1, Monetary: 1349},
	}

	tests := []struct {
		name        string
		contains    []string
		notContains []string
		limit       int
	}{
		{
			name:     "all rows",
			limit:    0,
			contains: []string{"2011-01-01", "2011-01-03", "1349"},
		},
		{
			name:        "limited to most recent",
			limit:       2,
			contains:    []string{"2011-01-02", "2011-01-03", "Showing last 2 of 3 days"},
			notContains: []string{"2011-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatter.FormatRFM(rows, tt.limit)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}

	assert.Contains(t, formatter.FormatRFM(nil, 0), "No data")
}

func TestStyles_RenderBar(t *testing.T) {
	s := NewStyles()

	tests := []struct {
		name   string
		share  float64
		width  int
		filled int
	}{
		{name: "half", share: 0.5, width: 10, filled: 5},
		{name: "over", share: 1.5, width: 10, filled: 10},
		{name: "negative", share: -1, width: 10, filled: 0},
		{name: "default width", share: 1, width: 0, filled: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := s.RenderBar(tt.share, tt.width)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			width := tt.width
			if width == 0 {
				width = 30
			}
			assert.Equal(t, width, strings.Count(bar, "█")+strings.Count(bar, "░"))
		})
	}
}

func TestStyles_WithWidth(t *testing.T) {
	s := NewStyles()
	narrow := s.WithWidth(60)
	assert.Equal(t, 56, narrow.Box.GetWidth())
	assert.Equal(t, 0, s.Box.GetWidth())
}

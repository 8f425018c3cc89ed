package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
)

// RecencyBase selects the date recency is counted back from.
type RecencyBase string

const (
	// RecencyRange counts back from the last date inside the selected range.
	RecencyRange RecencyBase = "range"
	// RecencyDataset counts back from the last date of the whole dataset and
	// narrows the derived table to the range afterwards.
	RecencyDataset RecencyBase = "dataset"
)

// ErrUnknownRecencyBase is returned by ParseRecencyBase for unsupported names.
var ErrUnknownRecencyBase = errors.New("unknown recency base")

// ParseRecencyBase maps a flag value onto a RecencyBase. Empty means RecencyRange.
func ParseRecencyBase(s string) (RecencyBase, error) {
	switch RecencyBase(s) {
	case "", RecencyRange:
		return RecencyRange, nil
	case RecencyDataset:
		return RecencyDataset, nil
	default:
		return "", fmt.Errorf("%w: %q (want range or dataset)", ErrUnknownRecencyBase, s)
	}
}

// DeriveRFM builds the RFM table for rng. With RecencyRange the records are
// filtered first; with RecencyDataset every record is derived and the rows
// are narrowed to rng. A nil cache derives directly.
func DeriveRFM(records []model.DayRecord, rng model.DateRange, base RecencyBase, cache *rfm.Cache) []model.RFMRow {
	if base == RecencyDataset {
		all := model.Activities(records)
		return dataset.FilterRows(derive(all, model.DateRange{}, cache), rng)
	}
	return derive(model.Activities(dataset.Filter(records, rng)), rng, cache)
}

func derive(activity []model.ActivityRecord, rng model.DateRange, cache *rfm.Cache) []model.RFMRow {
	if cache != nil {
		return cache.Derive(activity, rng)
	}
	return rfm.Derive(activity)
}

// ReportOption customises BuildReport.
type ReportOption func(*reportOptions)

type reportOptions struct {
	base RecencyBase
}

// WithRecencyBase sets where the RFM recency is counted from.
func WithRecencyBase(base RecencyBase) ReportOption {
	return func(o *reportOptions) {
		o.base = base
	}
}

// Report bundles every summary for one date range.
type Report struct {
	GeneratedAt time.Time
	Range       model.DateRange
	RecencyBase RecencyBase
	First       time.Time
	Last        time.Time
	Vocabulary  model.Vocabulary
	Describe    Table
	RFM         []model.RFMRow
	Seasons     []SeasonTotal
	Weather     []WeatherStats
	Monthly     []MonthlyAverage
	Records     int
	Total       int
}

// BuildReport filters records to rng and computes every summary over the
// selection. When cache is nil the RFM table is derived directly.
func BuildReport(records []model.DayRecord, rng model.DateRange, vocab model.Vocabulary, cache *rfm.Cache, opts ...ReportOption) (*Report, error) {
	o := reportOptions{base: RecencyRange}
	for _, opt := range opts {
		opt(&o)
	}

	selected := dataset.Filter(records, rng)

	describe, err := Describe(selected)
	if err != nil {
		return nil, fmt.Errorf("failed to describe records: %w", err)
	}

	rows := DeriveRFM(records, rng, o.base, cache)

	report := &Report{
		GeneratedAt: time.Now(),
		Range:       rng,
		RecencyBase: o.base,
		Vocabulary:  vocab,
		Describe:    describe,
		RFM:         rows,
		Seasons:     SeasonTotals(selected, vocab),
		Weather:     WeatherDistribution(selected, vocab),
		Monthly:     MonthlyAverages(selected),
		Records:     len(selected),
	}
	for _, rec := range selected {
		report.Total += rec.Count
	}
	if first, last, ok := dataset.Bounds(selected); ok {
		report.First = first
		report.Last = last
	}

	return report, nil
}

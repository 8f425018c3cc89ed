// Package analysis computes the descriptive summaries shown alongside the RFM table.
package analysis

import (
	"sort"

	"github.com/Veraticus/pedal/internal/model"
	"gonum.org/v1/gonum/stat"
)

// SeasonTotal is the rental volume for one season.
type SeasonTotal struct {
	Label  string
	Season model.Season
	Total  int
	Days   int
}

// WeatherStats describes the distribution of rental counts under one weather condition.
type WeatherStats struct {
	Label   string
	Weather model.Weather
	N       int
	Min     float64
	Q1      float64
	Median  float64
	Q3      float64
	Max     float64
	Mean    float64
	// Values holds the sorted counts the statistics were computed from.
	Values []float64
}

// MonthlyAverage holds the average count per month for one year.
type MonthlyAverage struct {
	Year    int
	Average [12]float64
	Present [12]bool
}

// SeasonTotals sums counts per season in season code order. Seasons without
// records are omitted.
func SeasonTotals(records []model.DayRecord, vocab model.Vocabulary) []SeasonTotal {
	totals := make(map[model.Season]*SeasonTotal)
	for _, rec := range records {
		st, ok := totals[rec.Season]
		if !ok {
			st = &SeasonTotal{Season: rec.Season, Label: vocab.SeasonLabel(rec.Season)}
			totals[rec.Season] = st
		}
		st.Total += rec.Count
		st.Days++
	}

	out := make([]SeasonTotal, 0, len(totals))
	for _, st := range totals {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

// WeatherDistribution computes box-plot statistics of the count per weather code.
func WeatherDistribution(records []model.DayRecord, vocab model.Vocabulary) []WeatherStats {
	values := make(map[model.Weather][]float64)
	for _, rec := range records {
		values[rec.Weather] = append(values[rec.Weather], float64(rec.Count))
	}

	out := make([]WeatherStats, 0, len(values))
	for w, xs := range values {
		sort.Float64s(xs)
		out = append(out, WeatherStats{
			Weather: w,
			Label:   vocab.WeatherLabel(w),
			N:       len(xs),
			Min:     xs[0],
			Q1:      stat.Quantile(0.25, stat.Empirical, xs, nil),
			Median:  stat.Quantile(0.5, stat.Empirical, xs, nil),
			Q3:      stat.Quantile(0.75, stat.Empirical, xs, nil),
			Max:     xs[len(xs)-1],
			Mean:    stat.Mean(xs, nil),
			Values:  xs,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weather < out[j].Weather })
	return out
}

// MonthlyAverages returns the mean count per calendar month for every year, ascending by year.
func MonthlyAverages(records []model.DayRecord) []MonthlyAverage {
	type acc struct {
		sum   [12]float64
		count [12]int
	}
	years := make(map[int]*acc)
	for _, rec := range records {
		m := int(rec.Month) - 1
		if m < 0 || m > 11 {
			continue
		}
		a, ok := years[rec.Year]
		if !ok {
			a = &acc{}
			years[rec.Year] = a
		}
		a.sum[m] += float64(rec.Count)
		a.count[m]++
	}

	out := make([]MonthlyAverage, 0, len(years))
	for year, a := range years {
		ma := MonthlyAverage{Year: year}
		for m := 0; m < 12; m++ {
			if a.count[m] > 0 {
				ma.Average[m] = a.sum[m] / float64(a.count[m])
				ma.Present[m] = true
			}
		}
		out = append(out, ma)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

package analysis

import (
	"fmt"
	"math"

	"github.com/Veraticus/pedal/internal/model"
)

// Sheet titles, in the order Sheets returns them.
const (
	SheetSummary = "Summary"
	SheetRFM     = "RFM"
	SheetSeasons = "Seasons"
	SheetWeather = "Weather"
	SheetMonthly = "Monthly"
)

// SheetTitles lists every sheet a report is laid out into.
var SheetTitles = []string{SheetSummary, SheetRFM, SheetSeasons, SheetWeather, SheetMonthly}

// Sheet is one tabular section of a report. The first row is the header.
type Sheet struct {
	Title string
	Rows  [][]any
}

// Sheets lays out the report as one sheet per section for spreadsheet exports.
func Sheets(report *Report) []Sheet {
	return []Sheet{
		summarySheet(report),
		rfmSheet(report.RFM),
		seasonsSheet(report.Seasons),
		weatherSheet(report.Weather),
		monthlySheet(report),
	}
}

func summarySheet(report *Report) Sheet {
	rows := [][]any{
		{"Bike Rental Report", report.Range.String()},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Records", report.Records},
		{"Total rentals", report.Total},
	}
	if !report.First.IsZero() {
		rows = append(rows,
			[]any{"First date", report.First.Format(model.DateLayout)},
			[]any{"Last date", report.Last.Format(model.DateLayout)},
		)
	}

	if len(report.Describe.Header) > 0 {
		rows = append(rows, []any{})
		rows = append(rows, stringsToRow(report.Describe.Header))
		for _, r := range report.Describe.Rows {
			rows = append(rows, stringsToRow(r))
		}
	}

	return Sheet{Title: SheetSummary, Rows: rows}
}

func rfmSheet(rows []model.RFMRow) Sheet {
	values := make([][]any, 0, len(rows)+1)
	values = append(values, []any{"Date", "Recency", "Frequency", "Monetary"})
	for _, r := range rows {
		values = append(values, []any{r.Date.Format(model.DateLayout), r.Recency, r.Frequency, r.Monetary})
	}
	return Sheet{Title: SheetRFM, Rows: values}
}

func seasonsSheet(seasons []SeasonTotal) Sheet {
	values := make([][]any, 0, len(seasons)+1)
	values = append(values, []any{"Season", "Days", "Total"})
	for _, s := range seasons {
		values = append(values, []any{s.Label, s.Days, s.Total})
	}
	return Sheet{Title: SheetSeasons, Rows: values}
}

func weatherSheet(weather []WeatherStats) Sheet {
	values := make([][]any, 0, len(weather)+1)
	values = append(values, []any{"Weather", "N", "Min", "Q1", "Median", "Q3", "Max", "Mean"})
	for _, w := range weather {
		values = append(values, []any{w.Label, w.N, w.Min, w.Q1, w.Median, w.Q3, w.Max, round2(w.Mean)})
	}
	return Sheet{Title: SheetWeather, Rows: values}
}

func monthlySheet(report *Report) Sheet {
	header := []any{"Year"}
	for m := model.Month(1); m <= 12; m++ {
		header = append(header, report.Vocabulary.MonthLabel(m))
	}

	values := make([][]any, 0, len(report.Monthly)+1)
	values = append(values, header)
	for _, ma := range report.Monthly {
		row := []any{fmt.Sprint(ma.Year)}
		for m := 0; m < 12; m++ {
			if ma.Present[m] {
				row = append(row, round2(ma.Average[m]))
			} else {
				row = append(row, "")
			}
		}
		values = append(values, row)
	}
	return Sheet{Title: SheetMonthly, Rows: values}
}

func stringsToRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

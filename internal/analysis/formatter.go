package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/model"
)

const seasonBarWidth = 30

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth returns a formatter whose boxes fit the given terminal width.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width)}
}

// FormatReport renders every section of the report.
func (f *CLIFormatter) FormatReport(report *Report) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}
	if report.Records == 0 {
		return f.formatHeader(report) + "\n\n" +
			f.styles.Warning.Render("No records in the selected date range")
	}

	sections := []string{
		f.formatHeader(report),
		f.FormatStatistics(report),
		f.FormatSeasons(report.Seasons),
		f.FormatWeather(report.Weather),
		f.FormatMonthly(report.Monthly, report.Vocabulary),
	}
	return strings.Join(sections, "\n\n")
}

// FormatStatistics renders the record totals and the describe table.
func (f *CLIFormatter) FormatStatistics(report *Report) string {
	lines := []string{
		fmt.Sprintf("Records:       %s", f.styles.Number.Render(strconv.Itoa(report.Records))),
		fmt.Sprintf("Total rentals: %s", f.styles.Number.Render(strconv.Itoa(report.Total))),
	}
	if !report.First.IsZero() {
		lines = append(lines, fmt.Sprintf("Dates:         %s to %s",
			report.First.Format(model.DateLayout), report.Last.Format(model.DateLayout)))
	}

	out := f.styles.RenderBox(strings.Join(lines, "\n"), "Statistics")
	if len(report.Describe.Header) > 0 {
		out += "\n" + cli.RenderTable(report.Describe.Header, report.Describe.Rows)
	}
	return out
}

// FormatSeasons renders total rentals per season with a share bar.
func (f *CLIFormatter) FormatSeasons(seasons []SeasonTotal) string {
	title := f.styles.Section.Render(cli.ChartIcon + " Total rentals by season")
	if len(seasons) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No data")
	}

	var total int
	for _, s := range seasons {
		total += s.Total
	}

	rows := make([][]string, 0, len(seasons))
	for _, s := range seasons {
		share := 0.0
		if total > 0 {
			share = float64(s.Total) / float64(total)
		}
		rows = append(rows, []string{
			s.Label,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Days),
			f.styles.Bar.Render(f.styles.RenderBar(share, seasonBarWidth)),
			fmt.Sprintf("%.1f%%", share*100),
		})
	}

	return title + "\n" + cli.RenderTable([]string{"Season", "Total", "Days", "", "Share"}, rows)
}

// FormatWeather renders the rental distribution per weather condition.
func (f *CLIFormatter) FormatWeather(weather []WeatherStats) string {
	title := f.styles.Section.Render(cli.ChartIcon + " Rental distribution by weather")
	if len(weather) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No data")
	}

	rows := make([][]string, 0, len(weather))
	for _, w := range weather {
		rows = append(rows, []string{
			w.Label,
			strconv.Itoa(w.N),
			formatFloat(w.Min),
			formatFloat(w.Q1),
			formatFloat(w.Median),
			formatFloat(w.Q3),
			formatFloat(w.Max),
			formatFloat(w.Mean),
		})
	}

	header := []string{"Weather", "Days", "Min", "Q1", "Median", "Q3", "Max", "Mean"}
	return title + "\n" + cli.RenderTable(header, rows)
}

// FormatMonthly renders average rentals per month with one column per year.
func (f *CLIFormatter) FormatMonthly(monthly []MonthlyAverage, vocab model.Vocabulary) string {
	title := f.styles.Section.Render(cli.ChartIcon + " Average monthly rentals")
	if len(monthly) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No data")
	}

	header := []string{"Month"}
	for _, m := range monthly {
		header = append(header, strconv.Itoa(m.Year))
	}

	rows := make([][]string, 0, 12)
	for i := 0; i < 12; i++ {
		row := []string{vocab.MonthLabel(model.Month(i + 1))}
		hasData := false
		for _, m := range monthly {
			if !m.Present[i] {
				row = append(row, "-")
				continue
			}
			hasData = true
			row = append(row, formatFloat(m.Average[i]))
		}
		if hasData {
			rows = append(rows, row)
		}
	}

	return title + "\n" + cli.RenderTable(header, rows)
}

// FormatRFM renders the RFM table. A positive limit keeps only the most
// recent rows.
func (f *CLIFormatter) FormatRFM(rows []model.RFMRow, limit int) string {
	title := f.styles.Section.Render(cli.ChartIcon + " RFM by day")
	if len(rows) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No data")
	}

	shown := rows
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	cells := make([][]string, 0, len(shown))
	for _, r := range shown {
		cells = append(cells, []string{
			r.Date.Format(model.DateLayout),
			strconv.Itoa(r.Recency),
			strconv.Itoa(r.Frequency),
			strconv.Itoa(r.Monetary),
		})
	}

	out := title + "\n" + cli.RenderTable([]string{"Date", "Recency", "Frequency", "Monetary"}, cells)
	if len(shown) < len(rows) {
		out += "\n" + f.styles.Subtle.Render(fmt.Sprintf("Showing last %d of %d days", len(shown), len(rows)))
	}
	return out
}

func (f *CLIFormatter) formatHeader(report *Report) string {
	title := f.styles.Title.Render(cli.BikeIcon + " Bike Rental Report")
	period := f.styles.Subtitle.Render("Range: " + report.Range.String())
	generated := f.styles.Subtle.Render("Generated: " + report.GeneratedAt.Format("2006-01-02 15:04:05"))
	return fmt.Sprintf("%s\n%s\n%s", title, period, generated)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

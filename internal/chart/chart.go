// Package chart renders report sections as PNG images.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
)

// File names written by RenderAll.
const (
	SeasonFile  = "seasons.png"
	WeatherFile = "weather.png"
	MonthlyFile = "monthly.png"
	RFMFile     = "rfm.png"
)

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// Renderer draws charts at a fixed size.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer producing 10x6 inch images.
func NewRenderer() *Renderer {
	return &Renderer{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// SeasonBar plots the total count per season.
func (r *Renderer) SeasonBar(seasons []analysis.SeasonTotal) (*plot.Plot, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("%w: no season totals", common.ErrNoRecords)
	}

	p := newPlot("Rentals by season", "Season", "Total rentals")

	values := make(plotter.Values, len(seasons))
	labels := make([]string, len(seasons))
	for i, s := range seasons {
		values[i] = float64(s.Total)
		labels[i] = s.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.Y.Min = 0
	return p, nil
}

// WeatherBox plots the count distribution per weather condition.
func (r *Renderer) WeatherBox(weather []analysis.WeatherStats) (*plot.Plot, error) {
	if len(weather) == 0 {
		return nil, fmt.Errorf("%w: no weather statistics", common.ErrNoRecords)
	}

	p := newPlot("Rental distribution by weather", "Weather", "Rentals per day")

	labels := make([]string, len(weather))
	for i, w := range weather {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(w.Values))
		if err != nil {
			return nil, fmt.Errorf("failed to build box for %s: %w", w.Label, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		labels[i] = w.Label
	}

	p.NominalX(labels...)
	return p, nil
}

// MonthlyLines plots the average count per month, one line per year.
// Months without data are left out of the line.
func (r *Renderer) MonthlyLines(monthly []analysis.MonthlyAverage, vocab model.Vocabulary) (*plot.Plot, error) {
	if len(monthly) == 0 {
		return nil, fmt.Errorf("%w: no monthly averages", common.ErrNoRecords)
	}

	p := newPlot("Average rentals per month", "Month", "Average rentals per day")

	for i, year := range monthly {
		var pts plotter.XYs
		for m := 0; m < 12; m++ {
			if year.Present[m] {
				pts = append(pts, plotter.XY{X: float64(m), Y: year.Average[m]})
			}
		}
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to build line for %d: %w", year.Year, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		p.Add(line, points)
		p.Legend.Add(fmt.Sprint(year.Year), line, points)
	}

	months := make([]string, 12)
	for m := range months {
		months[m] = vocab.MonthLabel(model.Month(m + 1))
	}
	p.NominalX(months...)
	p.Legend.Top = true
	return p, nil
}

// RFMScatter plots recency against monetary value. Glyph colour is graded by frequency.
func (r *Renderer) RFMScatter(rows []model.RFMRow) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no RFM rows", common.ErrNoRecords)
	}

	p := newPlot("RFM: recency vs monetary", "Recency (days)", "Monetary (rentals)")

	pts := make(plotter.XYs, len(rows))
	minFreq, maxFreq := rows[0].Frequency, rows[0].Frequency
	for i, row := range rows {
		pts[i] = plotter.XY{X: float64(row.Recency), Y: float64(row.Monetary)}
		minFreq = min(minFreq, row.Frequency)
		maxFreq = max(maxFreq, row.Frequency)
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter: %w", err)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(float64(minFreq))
	// A colour map needs a non-empty range.
	colors.SetMax(float64(max(maxFreq, minFreq+1)))

	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		style := scatter.GlyphStyle
		style.Shape = draw.CircleGlyph{}
		style.Radius = vg.Points(3)
		if c, cerr := colors.At(float64(rows[i].Frequency)); cerr == nil {
			style.Color = c
		}
		return style
	}

	p.Add(scatter, plotter.NewGrid())
	p.X.Min = 0
	return p, nil
}

// Save writes p as a PNG at path.
func (r *Renderer) Save(p *plot.Plot, path string) error {
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// RenderAll renders every chart for report into dir concurrently and
// returns the written paths in a fixed order.
func (r *Renderer) RenderAll(ctx context.Context, report *analysis.Report, dir string) ([]string, error) {
	if report == nil || report.Records == 0 {
		return nil, fmt.Errorf("%w: nothing to chart", common.ErrNoRecords)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	jobs := []struct {
		build func() (*plot.Plot, error)
		file  string
	}{
		{file: SeasonFile, build: func() (*plot.Plot, error) { return r.SeasonBar(report.Seasons) }},
		{file: WeatherFile, build: func() (*plot.Plot, error) { return r.WeatherBox(report.Weather) }},
		{file: MonthlyFile, build: func() (*plot.Plot, error) { return r.MonthlyLines(report.Monthly, report.Vocabulary) }},
		{file: RFMFile, build: func() (*plot.Plot, error) { return r.RFMScatter(report.RFM) }},
	}

	paths := make([]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := job.build()
			if err != nil {
				return fmt.Errorf("%s: %w", job.file, err)
			}
			path := filepath.Join(dir, job.file)
			if err := r.Save(p, path); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

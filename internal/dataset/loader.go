// Package dataset loads and reshapes the bike rental dataset.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/pedal/internal/model"
)

// Loader errors.
var (
	ErrDataNotFound  = errors.New("data file not found")
	ErrMissingColumn = errors.New("required column missing")
	ErrInvalidRow    = errors.New("invalid row")
	ErrEmptyInput    = errors.New("input has no header row")
)

// columnRenames maps the raw dataset headers onto the names used internally.
var columnRenames = map[string]string{
	"dteday":     "dateday",
	"yr":         "year",
	"mnth":       "month",
	"weathersit": "weather",
	"cnt":        "count",
	"hr":         "hour",
}

var dateLayouts = []string{model.DateLayout, "2006/01/02", time.RFC3339, "2006-01-02 15:04:05"}

// Options controls how rows are interpreted.
type Options struct {
	// Progress is called after each data row with the rows done and the total.
	Progress   func(done, total int)
	Vocabulary model.Vocabulary
	Comma      rune
	// Strict turns the first malformed row into an error instead of skipping it.
	Strict     bool
}

// DefaultOptions returns options for the comma-separated dataset with default labels.
func DefaultOptions() Options {
	return Options{
		Vocabulary: model.DefaultVocabulary(),
		Comma:      ',',
	}
}

// Result holds the records read from an input along with row accounting.
type Result struct {
	Records []model.DayRecord
	Rows    int
	Invalid int
}

// LoadFile opens path and loads it.
func LoadFile(path string, opts Options) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f, opts)
}

// Load reads delimited text with a header row and converts each row into a DayRecord.
func Load(r io.Reader, opts Options) (*Result, error) {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.Vocabulary.Seasons == nil {
		opts.Vocabulary = model.DefaultVocabulary()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Comma
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	cols := indexHeader(rows[0])
	for _, required := range []string{"dateday", "count"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	p := rowParser{cols: cols, width: len(rows[0]), vocab: opts.Vocabulary}
	result := &Result{Records: make([]model.DayRecord, 0, len(rows)-1)}
	total := len(rows) - 1

	for i, row := range rows[1:] {
		line := i + 2
		result.Rows++

		rec, parseErr := p.parse(row, i+1)
		if parseErr != nil {
			if opts.Strict {
				return nil, fmt.Errorf("line %d: %w", line, parseErr)
			}
			slog.Debug("Skipping invalid row", "line", line, "error", parseErr)
			result.Invalid++
		} else {
			result.Records = append(result.Records, rec)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, total)
		}
	}

	if result.Invalid > 0 {
		slog.Warn("Skipped invalid rows", "invalid", result.Invalid, "rows", result.Rows)
	}

	return result, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if renamed, ok := columnRenames[key]; ok {
			key = renamed
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

type rowParser struct {
	cols  map[string]int
	width int
	vocab model.Vocabulary
}

func (p rowParser) field(row []string, name string) (string, bool) {
	idx, ok := p.cols[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[idx])
	return v, v != ""
}

func (p rowParser) parse(row []string, ordinal int) (model.DayRecord, error) {
	if len(row) != p.width {
		return model.DayRecord{}, fmt.Errorf("%w: %d fields, header has %d", ErrInvalidRow, len(row), p.width)
	}

	raw, _ := p.field(row, "dateday")
	date, err := parseDate(raw)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("%w: date %q", ErrInvalidRow, raw)
	}

	rawCount, _ := p.field(row, "count")
	count, err := strconv.Atoi(rawCount)
	if err != nil || count < 0 {
		return model.DayRecord{}, fmt.Errorf("%w: count %q", ErrInvalidRow, rawCount)
	}

	rec := model.DayRecord{
		Instant: ordinal,
		Date:    date,
		Hour:    model.NoHour,
		Year:    date.Year(),
		Month:   model.Month(date.Month()),
		Count:   count,
	}

	if v, ok := p.field(row, "instant"); ok {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			rec.Instant = n
		}
	}
	if v, ok := p.field(row, "hour"); ok {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 0 && n < 24 {
			rec.Hour = n
		}
	}
	if v, ok := p.field(row, "season"); ok {
		rec.Season = p.season(v)
	}
	if v, ok := p.field(row, "weather"); ok {
		rec.Weather = p.weather(v)
	}
	if v, ok := p.field(row, "weekday"); ok {
		rec.Weekday, _ = strconv.Atoi(v)
	}
	rec.Holiday = p.flag(row, "holiday")
	rec.WorkingDay = p.flag(row, "workingday")
	rec.Temp = p.floatField(row, "temp")
	rec.ATemp = p.floatField(row, "atemp")
	rec.Humidity = p.floatField(row, "hum")
	rec.WindSpeed = p.floatField(row, "windspeed")
	rec.Casual = p.intField(row, "casual")
	rec.Registered = p.intField(row, "registered")

	rec.Hash = rec.GenerateHash()
	return rec, nil
}

// season accepts a numeric code or a vocabulary label.
func (p rowParser) season(v string) model.Season {
	if n, err := strconv.Atoi(v); err == nil {
		return model.Season(n)
	}
	for code, label := range p.vocab.Seasons {
		if strings.EqualFold(label, v) {
			return code
		}
	}
	return 0
}

// weather accepts a numeric code or a vocabulary label.
func (p rowParser) weather(v string) model.Weather {
	if n, err := strconv.Atoi(v); err == nil {
		return model.Weather(n)
	}
	for code, label := range p.vocab.Weather {
		if strings.EqualFold(label, v) {
			return code
		}
	}
	return 0
}

func (p rowParser) flag(row []string, name string) bool {
	v, ok := p.field(row, name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func (p rowParser) floatField(row []string, name string) float64 {
	v, ok := p.field(row, name)
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func (p rowParser) intField(row []string, name string) int {
	v, ok := p.field(row, name)
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return model.CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", v)
}

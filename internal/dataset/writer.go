package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/pedal/internal/model"
)

var rawHeader = []string{
	"instant", "dteday", "season", "yr", "mnth", "hr", "holiday", "weekday",
	"workingday", "weathersit", "temp", "atemp", "hum", "windspeed",
	"casual", "registered", "cnt",
}

// WriteCSV writes records in the raw dataset layout so they can be loaded again.
// The yr column is relative to the earliest year present, as in the source data.
func WriteCSV(w io.Writer, records []model.DayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	baseYear := 0
	if minDate, _, ok := Bounds(records); ok {
		baseYear = minDate.Year()
	}

	for _, rec := range records {
		hour := ""
		if rec.Hour != model.NoHour {
			hour = strconv.Itoa(rec.Hour)
		}
		row := []string{
			strconv.Itoa(rec.Instant),
			rec.Date.Format(model.DateLayout),
			strconv.Itoa(int(rec.Season)),
			strconv.Itoa(rec.Year - baseYear),
			strconv.Itoa(int(rec.Month)),
			hour,
			boolDigit(rec.Holiday),
			strconv.Itoa(rec.Weekday),
			boolDigit(rec.WorkingDay),
			strconv.Itoa(int(rec.Weather)),
			strconv.FormatFloat(rec.Temp, 'f', 6, 64),
			strconv.FormatFloat(rec.ATemp, 'f', 6, 64),
			strconv.FormatFloat(rec.Humidity, 'f', 6, 64),
			strconv.FormatFloat(rec.WindSpeed, 'f', 6, 64),
			strconv.Itoa(rec.Casual),
			strconv.Itoa(rec.Registered),
			strconv.Itoa(rec.Count),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", rec.Instant, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

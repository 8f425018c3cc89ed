package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/pedal/internal/model"
)

// Format names accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// WriteCSV writes rows with a date,recency,frequency,monetary header.
func WriteCSV(w io.Writer, rows []model.RFMRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "recency", "frequency", "monetary"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format(model.DateLayout),
			strconv.Itoa(r.Recency),
			strconv.Itoa(r.Frequency),
			strconv.Itoa(r.Monetary),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonRow struct {
	Date      string `json:"date"`
	Recency   int    `json:"recency"`
	Frequency int    `json:"frequency"`
	Monetary  int    `json:"monetary"`
}

// WriteJSON writes rows as an indented JSON array with YYYY-MM-DD dates.
func WriteJSON(w io.Writer, rows []model.RFMRow) error {
	out := make([]jsonRow, len(rows))
	for i, r := range rows {
		out[i] = jsonRow{
			Date:      r.Date.Format(model.DateLayout),
			Recency:   r.Recency,
			Frequency: r.Frequency,
			Monetary:  r.Monetary,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return nil
}

// Write dispatches to WriteCSV or WriteJSON by format name.
func Write(w io.Writer, format string, rows []model.RFMRow) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

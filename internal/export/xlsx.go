// Package export writes reports and RFM tables to local files.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/common"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes report as a workbook with one worksheet per report section.
func WriteXLSX(w io.Writer, report *analysis.Report) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", common.ErrNoRecords)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range analysis.Sheets(report) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Title); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Title); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet.Title, err)
		}

		if err := writeSheet(f, sheet, header); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet analysis.Sheet, headerStyle int) error {
	width := 1
	for r, row := range sheet.Rows {
		width = max(width, len(row))
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Title, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.Title, r+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Title, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet.Title, err)
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet.Title, "A", lastCol, 14); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet.Title, err)
	}

	return f.SetPanes(sheet.Title, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// XLSXWriter writes reports to a workbook file.
type XLSXWriter struct {
	Path string
}

// Write implements service.ReportWriter.
func (x *XLSXWriter) Write(ctx context.Context, report *analysis.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(x.Path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(x.Path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", x.Path, err)
	}
	if err := WriteXLSX(out, report); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", x.Path, err)
	}

	slog.Info("Wrote workbook", "path", x.Path, "rfm_rows", len(report.RFM))
	return nil
}

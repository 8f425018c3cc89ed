package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/export"
	"github.com/Veraticus/pedal/internal/service"
	"github.com/Veraticus/pedal/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the report to an Excel workbook or Google Sheets",
		Long: `Export the summary, RFM, season, weather and monthly tables.

Use --xlsx to write a local workbook and --sheets to update the spreadsheet
configured under sheets.* (run 'pedal auth sheets' first for OAuth2).`,
		RunE: runExport,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("xlsx", "", "Write the report to this .xlsx file")
	cmd.Flags().Bool("sheets", false, "Write the report to Google Sheets")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	toSheets, _ := cmd.Flags().GetBool("sheets")

	if xlsxPath == "" && !toSheets {
		return common.NewUserError("Nothing to export. Pass --xlsx <file> and/or --sheets.", common.ErrMissingConfig)
	}

	var writers []service.ReportWriter
	if xlsxPath != "" {
		writers = append(writers, &export.XLSXWriter{Path: config.ExpandPath(xlsxPath)})
	}
	if toSheets {
		sheetsConfig, err := config.LoadSheetsConfig()
		if err != nil {
			return common.NewUserError("Google Sheets is not configured. See 'pedal auth sheets --help'.", err)
		}
		writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create sheets writer: %w", err)
		}
		writers = append(writers, writer)
	}

	report, err := buildReport(cmd)
	if err != nil {
		return err
	}

	for _, w := range writers {
		if err := w.Write(ctx, report); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d days of RFM features", len(report.RFM))))
	return nil
}

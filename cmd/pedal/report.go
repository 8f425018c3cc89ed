package main

import (
	"fmt"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print statistics, season, weather and monthly summaries",
		RunE:  runReport,
	}

	addSourceFlags(cmd)
	cmd.Flags().Int("rfm", 0, "Also print the RFM table for the most recent N days")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	report, err := buildReport(cmd)
	if err != nil {
		return err
	}

	formatter := analysis.NewCLIFormatter()
	out := formatter.FormatReport(report)
	if n, _ := cmd.Flags().GetInt("rfm"); n > 0 {
		out += "\n\n" + formatter.FormatRFM(report.RFM, n)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// buildReport loads the selected records and summarises them.
func buildReport(cmd *cobra.Command) (*analysis.Report, error) {
	base, err := parseRecencyBase(cmd)
	if err != nil {
		return nil, err
	}

	records, rng, vocab, err := selectRecords(cmd)
	if err != nil {
		return nil, err
	}

	report, err := analysis.BuildReport(records, rng, vocab, nil, analysis.WithRecencyBase(base))
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return report, nil
}

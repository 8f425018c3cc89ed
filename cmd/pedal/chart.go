package main

import (
	"fmt"

	"github.com/Veraticus/pedal/internal/chart"
	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/spf13/cobra"
)

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render season, weather, monthly and RFM charts as PNG files",
		RunE:  runChart,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("out", "charts", "Directory to write the PNG files to")

	return cmd
}

func runChart(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("out")

	report, err := buildReport(cmd)
	if err != nil {
		return err
	}

	paths, err := chart.NewRenderer().RenderAll(cmd.Context(), report, config.ExpandPath(dir))
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Rendered %d charts", len(paths))))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s %s\n", cli.ChartIcon, p)
	}
	return nil
}

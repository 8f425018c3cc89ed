package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/spf13/cobra"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic daily dataset for demos",
		Long: `Write a synthetic day.csv-style file with seasonal, Poisson-distributed
rental counts. Useful for trying pedal without the real dataset.`,
		RunE: runSample,
	}

	cmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Int("days", 731, "Number of days to generate")
	cmd.Flags().Uint64("seed", 1, "Random seed")
	cmd.Flags().String("start", "2011-01-01", "First date (format: 2006-01-02)")

	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	days, _ := cmd.Flags().GetInt("days")
	seed, _ := cmd.Flags().GetUint64("seed")
	startFlag, _ := cmd.Flags().GetString("start")
	path, _ := cmd.Flags().GetString("out")

	if days <= 0 {
		return common.NewUserError("--days must be positive", common.ErrInvalidConfig)
	}
	start, err := time.Parse(model.DateLayout, startFlag)
	if err != nil {
		return common.NewUserError("--start must use the YYYY-MM-DD format", err)
	}

	records := dataset.Sample(dataset.SampleOptions{Start: start, Days: days, Seed: seed})

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		path = config.ExpandPath(path)
		f, err := os.Create(path) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := dataset.WriteCSV(w, records); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}

	if path != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Wrote %d sample days to %s", len(records), path)))
	}
	return nil
}

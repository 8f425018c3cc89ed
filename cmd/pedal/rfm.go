package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/export"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
	"github.com/spf13/cobra"
)

const formatTable = "table"

func rfmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfm",
		Short: "Derive per-day Recency, Frequency and Monetary features",
		Long: `Derive one row per calendar day: recency is the number of days before the
last date in the selection, frequency the number of records on that day and
monetary the total rentals on that day.`,
		RunE: runRFM,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("format", formatTable, "Output format (table, json, csv)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Int("limit", 0, "Show only the most recent days in table output")
	cmd.Flags().Bool("save", false, "Store the result as a snapshot")
	cmd.Flags().String("label", "", "Label for the saved snapshot")

	cmd.AddCommand(rfmHistoryCmd())
	cmd.AddCommand(rfmShowCmd())
	cmd.AddCommand(rfmDeleteCmd())

	return cmd
}

func runRFM(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	base, err := parseRecencyBase(cmd)
	if err != nil {
		return err
	}

	records, rng, _, err := selectRecords(cmd)
	if err != nil {
		return err
	}

	rows := analysis.DeriveRFM(records, rng, base, nil)

	if save, _ := cmd.Flags().GetBool("save"); save {
		label, _ := cmd.Flags().GetString("label")
		snap := &model.RFMSnapshot{
			Range:      rng,
			Label:      label,
			SourceHash: snapshotSource(records, rng, base),
			Rows:       rows,
		}
		if err := saveSnapshot(cmd, snap); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Saved snapshot %s (%d days)", snap.ID, snap.RowCount)))
	}

	return writeRows(cmd, format, rows)
}

// snapshotSource hashes the records and range a derivation was built from.
func snapshotSource(records []model.DayRecord, rng model.DateRange, base analysis.RecencyBase) string {
	if base == analysis.RecencyDataset {
		return rfm.Key(model.Activities(records), rng)
	}
	return rfm.Key(model.Activities(dataset.Filter(records, rng)), rng)
}

func saveSnapshot(cmd *cobra.Command, snap *model.RFMSnapshot) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveSnapshot(cmd.Context(), snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func checkFormat(format string) error {
	switch format {
	case formatTable, export.FormatCSV, export.FormatJSON:
		return nil
	default:
		return common.NewUserError(fmt.Sprintf("Unknown format %q. Use table, json or csv.", format), common.ErrInvalidConfig)
	}
}

// writeRows prints rows in the requested format to stdout or --output.
func writeRows(cmd *cobra.Command, format string, rows []model.RFMRow) error {
	var w io.Writer = cmd.OutOrStdout()

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if format == formatTable {
		limit, _ := cmd.Flags().GetInt("limit")
		_, err := fmt.Fprintln(w, analysis.NewCLIFormatter().FormatRFM(rows, limit))
		return err
	}
	return export.Write(w, format, rows)
}

func rfmHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved RFM snapshots",
		RunE:  runRFMHistory,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of snapshots to list (0 for all)")
	return cmd
}

func runRFMHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snaps, err := store.ListSnapshots(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No snapshots saved yet. Use 'pedal rfm --save'."))
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Range.String(),
			fmt.Sprintf("%d", s.RowCount),
			s.Label,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"ID", "Created", "Range", "Days", "Label"}, rows))
	return nil
}

func rfmShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved RFM snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runRFMShow,
	}
	cmd.Flags().String("format", formatTable, "Output format (table, json, csv)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Int("limit", 0, "Show only the most recent days in table output")
	return cmd
}

func runRFMShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.GetSnapshot(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("No snapshot with ID %s", args[0]), err)
		}
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if format == formatTable {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(fmt.Sprintf("Snapshot %s · %s · created %s",
			snap.ID, snap.Range.String(), snap.CreatedAt.Local().Format("2006-01-02 15:04"))))
	}
	return writeRows(cmd, format, snap.Rows)
}

func rfmDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved RFM snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runRFMDelete,
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func runRFMDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		ok, err := cli.Confirm(ctx, reader, cmd.ErrOrStderr(), fmt.Sprintf("Delete snapshot %s?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Nothing deleted"))
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteSnapshot(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("No snapshot with ID %s", id), err)
		}
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Deleted snapshot "+id))
	return nil
}

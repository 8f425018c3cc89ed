package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import a bike sharing CSV into the database",
		Long: `Load a day.csv or hour.csv file, normalise its columns and labels, and
store the records in the local database. Records already present are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Parse the file and report what would be imported without saving")
	cmd.Flags().Bool("strict", false, "Fail on the first invalid row instead of skipping it")
	cmd.Flags().Bool("replace", false, "Delete all stored records before importing")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	strict, _ := cmd.Flags().GetBool("strict")
	replace, _ := cmd.Flags().GetBool("replace")

	vocab, err := config.Vocabulary(viper.GetViper())
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, cli.FormatTitle("Importing "+path))

	var progress *cli.Progress
	opts := dataset.DefaultOptions()
	opts.Vocabulary = vocab
	opts.Strict = strict
	opts.Progress = func(done, total int) {
		if progress == nil {
			progress = cli.NewProgress(out, total, "Reading rows...")
		}
		progress.Update(done, total)
	}

	result, err := dataset.LoadFile(path, opts)
	if err != nil {
		if errors.Is(err, dataset.ErrDataNotFound) {
			return common.NewUserError("Data file not found. Please check the file path.", err)
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if progress != nil {
		progress.Finish()
	}

	first, last, _ := dataset.Bounds(result.Records)
	slog.Debug("Parsed import file",
		"path", path,
		"rows", result.Rows,
		"invalid", result.Invalid,
		"first", first.Format(model.DateLayout),
		"last", last.Format(model.DateLayout))

	if dryRun {
		fmt.Fprintln(out, cli.FormatWarning("Dry run mode - not saving to database"))
		fmt.Fprintln(cmd.OutOrStdout(), importSummary(result, -1))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if replace {
		deleted, err := store.DeleteRecords(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
		slog.Info("Cleared stored records", "deleted", deleted)
	}

	inserted := 0
	if len(result.Records) > 0 {
		inserted, err = store.SaveRecords(ctx, result.Records)
		if err != nil {
			return fmt.Errorf("failed to save records: %w", err)
		}
	}

	common.LogInfo("Import complete", common.Fields{
		"path":     path,
		"inserted": inserted,
		"invalid":  result.Invalid,
	})
	fmt.Fprintln(cmd.OutOrStdout(), importSummary(result, inserted))
	return nil
}

// importSummary renders the import totals. inserted < 0 marks a dry run.
func importSummary(result *dataset.Result, inserted int) string {
	lines := []string{
		cli.FormatStat("Rows read", result.Rows),
		cli.FormatStat("Valid records", len(result.Records)),
		cli.FormatStat("Invalid rows skipped", result.Invalid),
	}
	if first, last, ok := dataset.Bounds(result.Records); ok {
		lines = append(lines, cli.FormatStat("Dates", first.Format(model.DateLayout)+" to "+last.Format(model.DateLayout)))
	}

	title := "Dry Run"
	if inserted >= 0 {
		title = "Import Complete"
		lines = append(lines,
			cli.FormatStat("New records saved", inserted),
			cli.FormatStat("Duplicates skipped", len(result.Records)-inserted))
	}

	return cli.RenderBox(title, strings.Join(lines, "\n"))
}

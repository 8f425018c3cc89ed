package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/service"
	"github.com/Veraticus/pedal/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// addSourceFlags registers the flags that choose where records come from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "read records from this CSV instead of the database")
	cmd.Flags().StringP("start", "s", "", "first date to include (format: 2006-01-02)")
	cmd.Flags().StringP("end", "e", "", "last date to include (format: 2006-01-02)")
	cmd.Flags().String("relative-to", string(analysis.RecencyRange),
		"count recency from the last date of the range or of the whole dataset (range, dataset)")
}

// parseRecencyBase reads --relative-to.
func parseRecencyBase(cmd *cobra.Command) (analysis.RecencyBase, error) {
	raw, _ := cmd.Flags().GetString("relative-to")
	base, err := analysis.ParseRecencyBase(raw)
	if err != nil {
		return "", common.NewUserError("--relative-to must be range or dataset", err)
	}
	return base, nil
}

// parseRange reads --start and --end.
func parseRange(cmd *cobra.Command) (model.DateRange, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	rng, err := model.ParseDateRange(start, end)
	if err != nil {
		return model.DateRange{}, common.NewUserError("Dates must use the YYYY-MM-DD format", err)
	}
	return rng, nil
}

// loadRecords returns every record from --file, data.path or the database.
func loadRecords(cmd *cobra.Command, vocab model.Vocabulary) ([]model.DayRecord, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = config.DataPath(viper.GetViper())
	}

	if path != "" {
		opts := dataset.DefaultOptions()
		opts.Vocabulary = vocab
		result, err := dataset.LoadFile(config.ExpandPath(path), opts)
		if err != nil {
			if errors.Is(err, dataset.ErrDataNotFound) {
				return nil, common.NewUserError("Data file not found. Please check the file path.", err)
			}
			return nil, err
		}
		if result.Invalid > 0 {
			slog.Warn("Skipped invalid rows", "file", path, "invalid", result.Invalid, "rows", result.Rows)
		}
		return result.Records, nil
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetRecords(cmd.Context(), model.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// selectRecords loads records and narrows them to the requested range.
// An inverted range is reported and the full dataset is used instead.
func selectRecords(cmd *cobra.Command) ([]model.DayRecord, model.DateRange, model.Vocabulary, error) {
	vocab, err := config.Vocabulary(viper.GetViper())
	if err != nil {
		return nil, model.DateRange{}, model.Vocabulary{}, err
	}

	rng, err := parseRange(cmd)
	if err != nil {
		return nil, model.DateRange{}, model.Vocabulary{}, err
	}

	records, err := loadRecords(cmd, vocab)
	if err != nil {
		return nil, model.DateRange{}, model.Vocabulary{}, err
	}
	if len(records) == 0 {
		return nil, model.DateRange{}, model.Vocabulary{}, common.NewUserError(
			"No records found. Run 'pedal import <file>' or pass --file.", common.ErrNoRecords)
	}

	_, effective, warning := dataset.Resolve(records, rng)
	if warning != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(warning.Error()+"; using the full dataset"))
	}

	return records, effective, vocab, nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.DatabasePath(viper.GetViper())

	slog.Debug("Opening database", "database", dbPath, "status_only", status)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if status {
		version, err := store.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		lines := []string{
			cli.FormatStat("Database", dbPath),
			cli.FormatStat("Current version", version),
			cli.FormatStat("Latest version", storage.ExpectedSchemaVersion),
		}

		if version >= 1 {
			count, err := store.GetRecordCount(ctx)
			if err != nil {
				return fmt.Errorf("failed to count records: %w", err)
			}
			lines = append(lines, cli.FormatStat("Records", count))

			first, last, err := store.GetDateBounds(ctx)
			switch {
			case err == nil:
				lines = append(lines, cli.FormatStat("Dates", first.Format(model.DateLayout)+" to "+last.Format(model.DateLayout)))
			case !errors.Is(err, common.ErrNotFound):
				return fmt.Errorf("failed to read date bounds: %w", err)
			}
		}

		fmt.Fprintln(out, cli.RenderBox(cli.FolderIcon+" Database Migration Status", strings.Join(lines, "\n")))
		if version < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning("Run 'pedal migrate' to apply pending migrations"))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database at schema version %d: %s", storage.ExpectedSchemaVersion, dbPath)))
	return nil
}

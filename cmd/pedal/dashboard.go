package main

import (
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/config"
	"github.com/Veraticus/pedal/internal/rfm"
	"github.com/Veraticus/pedal/internal/tui"
	"github.com/Veraticus/pedal/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Explore the data in an interactive terminal dashboard",
		Long: `Open a dashboard with Statistics, Seasons, Weather, Monthly and RFM tabs.

Keys: Tab/Shift+Tab switch tabs, [ and ] move the start date, { and } move
the end date, r resets the range, ? shows help and q quits.`,
		RunE: runDashboard,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("theme", "default", "Colour theme (default, catppuccin-mocha)")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	vocab, err := config.Vocabulary(v)
	if err != nil {
		return err
	}
	rng, err := parseRange(cmd)
	if err != nil {
		return err
	}
	base, err := parseRecencyBase(cmd)
	if err != nil {
		return err
	}
	records, err := loadRecords(cmd, vocab)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NewUserError("No records found. Run 'pedal import <file>' or pass --file.", common.ErrNoRecords)
	}

	cache := rfm.NewCache(config.CacheTTL(v))
	defer cache.Close()

	theme, _ := cmd.Flags().GetString("theme")
	cfg := tui.NewConfig(records,
		tui.WithVocabulary(vocab),
		tui.WithRange(rng),
		tui.WithRecencyBase(base),
		tui.WithCache(cache),
		tui.WithTheme(themes.GetTheme(theme)),
	)

	return tui.Run(cmd.Context(), cfg)
}

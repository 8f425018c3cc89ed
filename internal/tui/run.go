package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/rfm"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	if len(cfg.Records) == 0 {
		return fmt.Errorf("dashboard: %w", common.ErrNoRecords)
	}

	if cfg.Cache == nil {
		cfg.Cache = rfm.NewCache(rfm.DefaultCacheTTL)
		defer cfg.Cache.Close()
	}

	program := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		"",
		m.viewport.View(),
		m.help.View(m.keymap),
	)

	return m.theme.BorderedBox.
		Width(m.width - 2).
		Render(content)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(cli.BikeIcon+" Loading rentals..."),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Deriving RFM features"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	lines := []string{
		m.theme.Title.Render(cli.BikeIcon + " Bike Rental Dashboard"),
		m.theme.Subtitle.Render("Range: " + m.rng.String()),
	}

	switch {
	case m.err != nil:
		lines = append(lines, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.err.Error()))
	case m.warning != nil:
		lines = append(lines, m.theme.StatusWarning.Render(
			cli.WarningIcon+" "+m.warning.Error()+"; showing the full dataset"))
	default:
		lines = append(lines, m.theme.StatusInfo.Render(m.selectionSummary()))
	}

	return strings.Join(lines, "\n")
}

func (m Model) selectionSummary() string {
	if m.report == nil {
		return ""
	}
	return fmt.Sprintf("Days: %d  Rentals: %d", m.report.Records, m.report.Total)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.ActiveTab.Render(name)
		} else {
			tabs[i] = m.theme.InactiveTab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTab renders the body of the active tab.
func (m Model) renderTab() string {
	if m.report == nil {
		return ""
	}
	if m.report.Records == 0 {
		return m.theme.StatusWarning.Render("No records in the selected date range")
	}

	switch m.tab {
	case TabStatistics:
		return m.formatter.FormatStatistics(m.report)
	case TabSeasons:
		return m.formatter.FormatSeasons(m.report.Seasons)
	case TabWeather:
		return m.formatter.FormatWeather(m.report.Weather)
	case TabMonthly:
		return m.formatter.FormatMonthly(m.report.Monthly, m.report.Vocabulary)
	case TabRFM:
		return m.formatter.FormatRFM(m.report.RFM, 0)
	default:
		return ""
	}
}

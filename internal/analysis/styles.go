package analysis

import (
	"strings"

	"github.com/Veraticus/pedal/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box     lipgloss.Style
	Section lipgloss.Style
	Number  lipgloss.Style
	Bar     lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.InfoColor)

	s.Number = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.Bar = lipgloss.NewStyle().
		Foreground(cli.PrimaryColor)

	return s
}

// WithWidth returns a copy adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s
	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
	}
	return &newStyles
}

// RenderBar draws a horizontal bar filled to share of width.
// share is clamped to [0, 1].
func (s *Styles) RenderBar(share float64, width int) string {
	if width <= 0 {
		width = 30
	}

	filled := int(float64(width) * share)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content, title string) string {
	if title != "" {
		content = s.Section.Render(" "+title+" ") + "\n" + content
	}
	return s.Box.Render(content)
}

package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under header with the package table styles.
// Cells after the first column are right-aligned.
func RenderTable(header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col > 0 {
				return TableCellStyle.Align(lipgloss.Right)
			}
			return TableCellStyle
		})
	return t.Render()
}

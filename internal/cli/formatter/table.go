package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const colGap = 2

// RenderTable renders an aligned, borderless table with a dim rule under
// the header row. Cells may already carry styles; widths are measured on
// the visible text.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	// Pad short rows so every column lines up.
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, len(headers))
		copy(padded[i], row)
	}

	last := len(headers) - 1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle()
			if col < last {
				s = s.PaddingRight(colGap)
			}
			if row == table.HeaderRow {
				return s.Inherit(StyleHeader)
			}
			return s
		})

	return strings.TrimRight(t.String(), "\n") + "\n"
}

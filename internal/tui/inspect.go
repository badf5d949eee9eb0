package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshTopValues fills the table with the hovered grid cell's top values.
// It reports false when there is nothing to show.
func (m *Model) refreshTopValues() bool {
	if m.grid == nil {
		m.status = "top values are only available on grid charts"
		return false
	}
	h := m.grid.Hovered()
	if h == nil || !h.Present || len(h.Value.TopValues) == 0 {
		m.status = "no top values for the hovered cell"
		return false
	}
	textW := 8
	for _, tv := range h.Value.TopValues {
		textW = max(textW, min(24, len([]rune(tv.Text))+2))
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "text", Width: textW},
		{Title: "probability", Width: 12},
	}
	rows := make([]table.Row, 0, len(h.Value.TopValues))
	for i, tv := range h.Value.TopValues {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%q", tv.Text),
			strconv.FormatFloat(tv.Probability, 'f', 4, 64),
		})
	}
	// Clear rows first so the column change never sees mismatched rows.
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.status = fmt.Sprintf("top values  row=%d col=%d", h.Cell.Row, h.Cell.Col)
	return true
}

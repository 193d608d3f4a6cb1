package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/samber/lo"

	"geolabel/internal/callout"
)

const maxTextCol = 32

// refreshTable rebuilds the labels table from the current collection.
func (m *Model) refreshTable() {
	rows := lo.Map(m.labels.States(), func(s callout.State, i int) table.Row {
		text := strings.ReplaceAll(s.Text, "\n", " ")
		if r := []rune(text); len(r) > maxTextCol {
			text = string(r[:maxTextCol-1]) + "…"
		}
		return table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.5f", s.Anchor.Lat),
			fmt.Sprintf("%.5f", s.Anchor.Lng),
			fmt.Sprintf("%.0f", s.Offset.X),
			fmt.Sprintf("%.0f", s.Offset.Y),
			text,
		}
	})
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "lat", Width: 10},
		{Title: "lng", Width: 11},
		{Title: "dx", Width: 5},
		{Title: "dy", Width: 5},
		{Title: "text", Width: maxTextCol},
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	if i := lo.IndexOf(m.labels.Labels(), m.selected); i >= 0 {
		m.tbl.SetCursor(i)
	}
}

// selectFromTable selects the label under the table cursor.
func (m *Model) selectFromTable() {
	labels := m.labels.Labels()
	if i := m.tbl.Cursor(); i >= 0 && i < len(labels) {
		m.selectLabel(labels[i])
	}
}

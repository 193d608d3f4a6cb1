package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()

	// Header
	header := titleStyle.Render(" geolabel ─ callouts on a terminal map ")
	header = lipgloss.NewStyle().Width(f.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showTable:
		// Render the labels table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(f.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(f.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.editMode:
		m.ta.SetWidth(min(f.mapW-4, 60))
		m.ta.SetHeight(min(f.mapH-2, 8))
		box := boxStyle.Render(m.ta.View())
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.inspectPopup != "":
		maxPopupW := max(20, min(56, f.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Left, lipgloss.Center, box)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.renderMap(f.mapW, f.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// mouse coords at bottom-right
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, f.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(f.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(f.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"n new",
		"x delete",
		"[ ] select",
		"e edit",
		"a labels",
		"i inspect",
		"s svg",
		"Tab maps",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

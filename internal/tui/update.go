package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geolabel/internal/mapview"
)

const panStep = 4 // micro-pixels: two columns or one row

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.editMode {
			return m.updateEdit(msg)
		}
		if m.showTable {
			return m.updateTable(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.labels.Close()
			return m, tea.Quit
		case "+", "=":
			m.zoom(mapview.ZoomStep)
		case "-", "_":
			m.zoom(1 / mapview.ZoomStep)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "h":
			m.helpVisible = !m.helpVisible
		case "n":
			m.addLabel()
		case "x", "delete":
			m.deleteSelected()
		case "]":
			m.cycle(1)
		case "[":
			m.cycle(-1)
		case "e":
			if m.selected == nil {
				m.status = "no label selected"
				break
			}
			m.editMode = true
			m.ta.SetValue(m.selected.Text())
			m.status = "edit mode"
			return m, m.ta.Focus()
		case "a":
			m.showTable = true
			m.refreshTable()
			m.status = "labels"
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = m.inspect()
			m.status = "inspect popup"
		case "esc":
			m.inspectPopup = ""
		case "s":
			m.exportSVG()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.view.Pan(0, -panStep)
		case "down":
			m.view.Pan(0, panStep)
		case "left":
			m.view.Pan(-panStep, 0)
		case "right":
			m.view.Pan(panStep, 0)
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	default:
		if cmd := m.labels.Update(msg); cmd != nil {
			return m, cmd
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) zoom(f float64) {
	if m.view.ZoomBy(f) {
		m.status = fmt.Sprintf("zoom: %.2fx", m.view.Zoom())
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editMode = false
		m.ta.Blur()
		m.status = "edit cancelled"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "edit: empty text"
			return m, nil
		}
		m.selected.SetText(text)
		m.editMode = false
		m.ta.Blur()
		m.status = fmt.Sprintf("label text set, %d lines", len(m.selected.Lines()))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.labels.Close()
		return m, tea.Quit
	case "esc", "a":
		m.showTable = false
		return m, nil
	case "enter":
		m.selectFromTable()
		m.showTable = false
		m.status = "label selected"
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// updateMouse routes the pointer to the labels first; what they do not
// capture pans the map.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	f := m.frame()
	inside := f.inMap(msg.X, msg.Y)
	p := f.toPixel(msg.X, msg.Y)

	m.hoverHasGeo = inside && m.view.Ready()
	if m.hoverHasGeo {
		ll := m.view.Unproject(p)
		m.hoverLon, m.hoverLat = ll.Lng, ll.Lat
	}
	if m.editMode || m.showTable {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				m.zoom(mapview.ZoomStep)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.zoom(1 / mapview.ZoomStep)
			}
		case tea.MouseButtonLeft:
			if !inside {
				return
			}
			captured := m.surface.PointerDown(p)
			m.selectLabel(m.labels.LabelAt(p))
			if !captured && m.view.Draggable() {
				m.panning, m.panFrom = true, p
			}
		}
	case tea.MouseActionMotion:
		if m.surface.PointerMove(p) {
			return
		}
		if m.panning {
			d := p.Sub(m.panFrom)
			m.view.Pan(d.X, d.Y)
			m.panFrom = p
		}
	case tea.MouseActionRelease:
		if m.surface.PointerUp(p) && m.selected != nil {
			s := m.selected.State()
			m.status = fmt.Sprintf("label at lat=%.5f lng=%.5f offset=(%.0f,%.0f)",
				s.Anchor.Lat, s.Anchor.Lng, s.Offset.X, s.Offset.Y)
		}
		m.panning = false
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"geolabel/internal/callout"
	"geolabel/internal/config"
	"geolabel/internal/export"
	"geolabel/internal/geom"
)

const (
	selectColor = "#FFA500"
	exportName  = "geolabel.svg"
	// a braille line is 4 micro-pixels tall; keep SVG text in proportion
	exportFontSize = 3.5
)

func (m *Model) selectLabel(l *callout.Label) {
	if m.selected != nil {
		m.selected.SetOutline("")
	}
	m.selected = l
	if l != nil {
		l.SetOutline(selectColor)
	}
}

// cycle moves the selection by step through the labels, wrapping around.
func (m *Model) cycle(step int) {
	labels := m.labels.Labels()
	if len(labels) == 0 {
		m.status = "no labels"
		return
	}
	i := lo.IndexOf(labels, m.selected)
	if i < 0 && step < 0 {
		i = 0
	}
	i = ((i+step)%len(labels) + len(labels)) % len(labels)
	m.selectLabel(labels[i])
	m.status = fmt.Sprintf("label %d/%d", i+1, len(labels))
}

// addLabel creates a label anchored at the center of the map.
func (m *Model) addLabel() {
	if !m.labels.Ready() {
		m.status = "map not ready"
		return
	}
	w, h := m.view.Size()
	at := m.view.Unproject(geom.Pt(w/2, h/2))
	l := newLabel(m.cfg.Options(config.Seed{Lat: at.Lat, Lng: at.Lng}))
	m.labels.Add(l)
	m.selectLabel(l)
	m.status = fmt.Sprintf("new label at lat=%.5f lng=%.5f", at.Lat, at.Lng)
}

func (m *Model) deleteSelected() {
	if m.selected == nil {
		m.status = "no label selected"
		return
	}
	labels := m.labels.Labels()
	i := lo.IndexOf(labels, m.selected)
	m.labels.Remove(m.selected)
	m.selected = nil
	if rest := m.labels.Labels(); len(rest) > 0 {
		m.selectLabel(rest[min(i, len(rest)-1)])
	}
	m.status = fmt.Sprintf("label deleted, %d left", len(labels)-1)
}

func (m Model) inspect() string {
	if m.selected == nil {
		return "no label selected"
	}
	s := m.selected.State()
	g := m.selected.Geometry()
	meta := []string{
		fmt.Sprintf("anchor: lat=%.6f lng=%.6f", s.Anchor.Lat, s.Anchor.Lng),
		fmt.Sprintf("offset: dx=%.1f dy=%.1f", s.Offset.X, s.Offset.Y),
		fmt.Sprintf("box: x=%.1f y=%.1f w=%.1f h=%.1f", g.Box.X, g.Box.Y, g.Box.W, g.Box.H),
		fmt.Sprintf("arrow: %.1f°", g.ArrowAngle),
		fmt.Sprintf("lines: %d", len(m.selected.Lines())),
		fmt.Sprintf("read-only: %v", m.selected.ReadOnly()),
		"text: " + strings.ReplaceAll(s.Text, "\n", " / "),
	}
	return strings.Join(meta, "\n")
}

// exportSVG writes the current map and labels next to the working directory.
func (m *Model) exportSVG() {
	w, h := m.view.Size()
	p := filepath.Join(m.cwd, exportName)
	f, err := os.Create(p)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	defer f.Close()
	err = export.SVG(f, export.Scene{
		Width:      int(w),
		Height:     int(h),
		Basemap:    m.data,
		Projection: m.view,
		Shapes:     m.surface.Shapes(),
		FontSize:   exportFontSize,
	})
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	m.status = "exported " + p
}

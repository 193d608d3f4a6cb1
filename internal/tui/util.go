package tui

import "geolabel/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// frame is the screen layout shared by View and the mouse handling.
type frame struct {
	contentW, contentH int
	originX, originY   int
	mapW, mapH         int
}

func (m Model) frame() frame {
	f := frame{originY: headerHeight}
	f.contentH = max(4, m.height-headerHeight-footerHeight)
	f.contentW = max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		f.originX = sidebarWidth + 1
	}
	f.mapW = max(10, f.contentW-sw-1)
	f.mapH = f.contentH
	return f
}

// inMap reports whether screen cell (x, y) lies in the map area.
func (f frame) inMap(x, y int) bool {
	return x >= f.originX && x < f.originX+f.mapW && y >= f.originY && y < f.originY+f.mapH
}

// toPixel returns the micro-pixel at the center of screen cell (x, y).
func (f frame) toPixel(x, y int) geom.Point {
	return geom.Pt(float64((x-f.originX)*2+1), float64((y-f.originY)*4+2))
}

// resize keeps the map view in step with the map area.
func (m *Model) resize() {
	f := m.frame()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, f.contentH-2)
	}
	m.view.Resize(float64(f.mapW*2), float64(f.mapH*4))
}

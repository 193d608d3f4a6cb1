package tui

import (
	"math"
	"strings"

	"geolabel/internal/canvas"
	"geolabel/internal/geom"
)

// renderMap draws the base map into a braille raster of w x h cells and the
// label shapes on top of it.
func (m Model) renderMap(w, h int) string {
	r := canvas.NewRaster(w, h)
	m.drawBasemap(r)
	m.surface.Render(r)
	return strings.Join(r.Lines(), "\n")
}

func (m Model) micro(p [2]float64) [2]int {
	pt := m.view.Project(geom.LatLng{Lat: p[1], Lng: p[0]})
	return [2]int{int(math.Round(pt.X)), int(math.Round(pt.Y))}
}

func (m Model) drawBasemap(r *canvas.Raster) {
	// polygons: fill the outer ring, then edges of every ring
	for _, poly := range m.data.Polygons {
		var rings [][][2]int
		for _, ring := range poly {
			var sm [][2]int
			for _, p := range ring {
				sm = append(sm, m.micro(p))
			}
			if len(sm) >= 3 {
				rings = append(rings, sm)
			}
		}
		if len(rings) == 0 {
			continue
		}
		r.FillPolygon(rings[0], polyFg)
		for _, ring := range rings {
			for i := range ring {
				a, b := ring[i], ring[(i+1)%len(ring)]
				r.DrawLine(a[0], a[1], b[0], b[1], edgeFg)
			}
		}
	}
	for _, ls := range m.data.Lines {
		for i := 1; i < len(ls); i++ {
			a, b := m.micro(ls[i-1]), m.micro(ls[i])
			r.DrawLine(a[0], a[1], b[0], b[1], edgeFg)
		}
	}
	// points only when nothing else is there to see
	if len(m.data.Lines) == 0 && len(m.data.Polygons) == 0 {
		for _, p := range m.data.Points {
			mp := m.micro(p)
			r.SetPixel(mp[0], mp[1], pointFg)
		}
	}
}

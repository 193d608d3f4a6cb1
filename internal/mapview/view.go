// Package mapview is the host map: it owns the lon/lat bbox, zoom and pan of the
// visible map and projects geographic coordinates to pixels and back.
package mapview

import (
	"geolabel/internal/geom"
)

const (
	MinZoom  = 0.05
	MaxZoom  = 64.0
	ZoomStep = 1.2
)

// World is the default extent before any base map is loaded.
var World = geom.BBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}

type listener struct {
	id int
	fn func()
}

// View is a pannable, zoomable window onto a lon/lat bbox.
// Pixel space has its origin at the top-left corner with y growing down.
type View struct {
	bbox   geom.BBox
	zoom   float64
	panX   float64
	panY   float64
	width  float64
	height float64

	draggable bool

	listeners []listener
	nextID    int
}

func New() *View {
	return &View{bbox: World, zoom: 1.0, draggable: true}
}

// OnViewChange registers fn to run after every pan, zoom, resize or bbox change.
func (v *View) OnViewChange(fn func()) (cancel func()) {
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range v.listeners {
			if l.id == id {
				v.listeners = append(v.listeners[:i:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

func (v *View) notify() {
	// snapshot: a listener may cancel itself
	ls := append([]listener(nil), v.listeners...)
	for _, l := range ls {
		l.fn()
	}
}

// Resize sets the pixel size of the map area.
func (v *View) Resize(w, h float64) {
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.notify()
}

func (v *View) Size() (w, h float64) { return v.width, v.height }

// Ready reports whether the view has a usable pixel size.
func (v *View) Ready() bool { return v.width > 1 && v.height > 1 }

// SetBBox frames b and resets zoom and pan. A degenerate bbox is padded.
func (v *View) SetBBox(b geom.BBox) {
	if b.MaxX <= b.MinX {
		b.MinX, b.MaxX = b.MinX-0.5, b.MaxX+0.5
	}
	if b.MaxY <= b.MinY {
		b.MinY, b.MaxY = b.MinY-0.5, b.MaxY+0.5
	}
	v.bbox = b
	v.zoom = 1.0
	v.panX, v.panY = 0, 0
	v.notify()
}

func (v *View) BBox() geom.BBox { return v.bbox }

// Pan shifts the map content by (dx, dy) pixels.
func (v *View) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.panX += dx
	v.panY += dy
	v.notify()
}

func (v *View) PanOffset() (dx, dy float64) { return v.panX, v.panY }

// ZoomBy multiplies the zoom by f, keeping it within [MinZoom, MaxZoom].
// It reports whether the zoom changed.
func (v *View) ZoomBy(f float64) bool {
	z := v.zoom * f
	if z < MinZoom || z > MaxZoom {
		return false
	}
	v.zoom = z
	v.notify()
	return true
}

func (v *View) Zoom() float64 { return v.zoom }

func (v *View) SetDraggable(d bool) { v.draggable = d }
func (v *View) Draggable() bool     { return v.draggable }

// Project maps a geographic coordinate to a pixel position in the current view.
func (v *View) Project(ll geom.LatLng) geom.Point {
	nx := (ll.Lng - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (ll.Lat - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	// zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	return geom.Point{
		X: zx*v.spanX() + v.panX,
		Y: (1.0-zy)*v.spanY() + v.panY,
	}
}

// Unproject is the inverse of Project.
func (v *View) Unproject(p geom.Point) geom.LatLng {
	zx := (p.X - v.panX) / v.spanX()
	zy := 1.0 - (p.Y-v.panY)/v.spanY()
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	return geom.LatLng{
		Lng: v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX),
		Lat: v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY),
	}
}

func (v *View) spanX() float64 {
	if v.width <= 1 {
		return 1
	}
	return v.width - 1
}

func (v *View) spanY() float64 {
	if v.height <= 1 {
		return 1
	}
	return v.height - 1
}

package geom

import "math"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a non-zero extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// bboxBuilder grows a BBox one coordinate at a time.
type bboxBuilder struct {
	bbox BBox
	n    int
}

func (b *bboxBuilder) add(x, y float64) {
	b.n++
	if b.n == 1 {
		b.bbox = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
		return
	}
	b.bbox.MinX = math.Min(b.bbox.MinX, x)
	b.bbox.MinY = math.Min(b.bbox.MinY, y)
	b.bbox.MaxX = math.Max(b.bbox.MaxX, x)
	b.bbox.MaxY = math.Max(b.bbox.MaxY, y)
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Empty reports whether no geometry was collected.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// dataBuilder accumulates geometries and keeps the bbox in sync.
type dataBuilder struct {
	d  Data
	bb bboxBuilder
}

func (b *dataBuilder) point(pt [2]float64) {
	b.d.Points = append(b.d.Points, pt)
	b.bb.add(pt[0], pt[1])
}

func (b *dataBuilder) line(ls [][2]float64) {
	b.d.Lines = append(b.d.Lines, ls)
	for _, p := range ls {
		b.bb.add(p[0], p[1])
	}
}

func (b *dataBuilder) polygon(poly [][][2]float64) {
	b.d.Polygons = append(b.d.Polygons, poly)
	for _, ring := range poly {
		for _, p := range ring {
			b.bb.add(p[0], p[1])
		}
	}
}

func (b *dataBuilder) data() Data {
	b.d.BBox = b.bb.bbox
	return b.d
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Point is a position or vector in pixel space (y grows down).
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Angle() float64        { return math.Atan2(p.Y, p.X) }
// Rotate turns p by deg degrees, clockwise on screen.
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the w x h rectangle centered at c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Min() Point    { return Point{r.X, r.Y} }
func (r Rect) Max() Point    { return Point{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	maxX, maxY := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

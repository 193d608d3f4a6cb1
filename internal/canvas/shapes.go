package canvas

import (
	"math"

	"geolabel/internal/geom"
)

// Shape is anything the canvas can hold, hit-test and move.
type Shape interface {
	Bounds() geom.Rect
	Contains(p geom.Point) bool
	Translate(d geom.Point)
	props() *Props
}

// Props are the presentation flags shared by all shapes.
type Props struct {
	Fill      string
	Stroke    string
	Draggable bool
	Hidden    bool
}

func (p *Props) props() *Props { return p }

// Rect is a filled box with an optional corner radius.
type Rect struct {
	Props
	geom.Rect
	Radius float64
}

func (r *Rect) Bounds() geom.Rect          { return r.Rect }
func (r *Rect) Contains(p geom.Point) bool { return r.Rect.Contains(p) }
func (r *Rect) Translate(d geom.Point)     { r.Rect = r.Rect.Translate(d) }

// Text is a block of pre-wrapped lines whose top-left corner sits at Pos.
type Text struct {
	Props
	Pos        geom.Point
	Lines      []string
	LineHeight float64
	Width      float64
}

func (t *Text) Bounds() geom.Rect {
	return geom.Rect{X: t.Pos.X, Y: t.Pos.Y, W: t.Width, H: float64(len(t.Lines)) * t.LineHeight}
}
func (t *Text) Contains(p geom.Point) bool { return t.Bounds().Contains(p) }
func (t *Text) Translate(d geom.Point)     { t.Pos = t.Pos.Add(d) }

// Line is a stroked segment.
type Line struct {
	Props
	From, To geom.Point
	Width    float64
}

func (l *Line) Bounds() geom.Rect {
	return geom.Rect{
		X: math.Min(l.From.X, l.To.X),
		Y: math.Min(l.From.Y, l.To.Y),
		W: math.Abs(l.To.X - l.From.X),
		H: math.Abs(l.To.Y - l.From.Y),
	}
}

// Contains reports whether p lies within half the stroke width of the segment.
func (l *Line) Contains(p geom.Point) bool {
	tol := math.Max(l.Width/2, 1.5)
	return distToSegment(p, l.From, l.To) <= tol
}

func (l *Line) Translate(d geom.Point) {
	l.From = l.From.Add(d)
	l.To = l.To.Add(d)
}

func distToSegment(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Scale(t))).Len()
}

// Triangle is an isosceles triangle whose apex is its origin. Unrotated, the
// apex points up and the base lies Height below it. Angle rotates the triangle
// clockwise around the apex, in degrees.
type Triangle struct {
	Props
	Pos    geom.Point
	Width  float64
	Height float64
	Angle  float64
}

// Vertices returns apex, base-left and base-right.
func (t *Triangle) Vertices() [3]geom.Point {
	left := geom.Pt(-t.Width/2, t.Height).Rotate(t.Angle)
	right := geom.Pt(t.Width/2, t.Height).Rotate(t.Angle)
	return [3]geom.Point{t.Pos, t.Pos.Add(left), t.Pos.Add(right)}
}

func (t *Triangle) Bounds() geom.Rect {
	v := t.Vertices()
	r := geom.Rect{X: v[0].X, Y: v[0].Y}
	for _, p := range v[1:] {
		r = r.Union(geom.Rect{X: p.X, Y: p.Y})
	}
	return r
}

func (t *Triangle) Contains(p geom.Point) bool {
	v := t.Vertices()
	d1 := cross(p, v[0], v[1])
	d2 := cross(p, v[1], v[2])
	d3 := cross(p, v[2], v[0])
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func (t *Triangle) Translate(d geom.Point) { t.Pos = t.Pos.Add(d) }

func cross(p, a, b geom.Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// Group moves, hides and hit-tests its children as one shape.
type Group struct {
	Props
	Children []Shape
}

func NewGroup(children ...Shape) *Group {
	return &Group{Children: children}
}

func (g *Group) Bounds() geom.Rect {
	if len(g.Children) == 0 {
		return geom.Rect{}
	}
	r := g.Children[0].Bounds()
	for _, c := range g.Children[1:] {
		r = r.Union(c.Bounds())
	}
	return r
}

func (g *Group) Contains(p geom.Point) bool {
	for _, c := range g.Children {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

func (g *Group) Translate(d geom.Point) {
	for _, c := range g.Children {
		c.Translate(d)
	}
}

package canvas

import (
	"math"

	"github.com/mattn/go-runewidth"

	"geolabel/internal/geom"
)

// CellMeasure measures text in raster micro-pixels: every terminal column is
// CellWidth pixels wide.
func CellMeasure(s string) float64 {
	return float64(runewidth.StringWidth(s) * CellWidth)
}

// NewTerminal returns a canvas measuring text in terminal cells.
func NewTerminal() *Canvas {
	return New(CellMeasure, CellHeight)
}

// Render paints every visible shape onto r in paint order.
func (c *Canvas) Render(r *Raster) {
	for _, s := range c.shapes {
		drawShape(r, s)
	}
}

func px(v float64) int { return int(math.Round(v)) }

func drawShape(r *Raster, s Shape) {
	if s.props().Hidden {
		return
	}
	switch s := s.(type) {
	case *Group:
		for _, ch := range s.Children {
			drawShape(r, ch)
		}
	case *Rect:
		if s.Fill != "" {
			r.FillRect(s.Rect, s.Fill)
		}
		if s.Stroke != "" {
			a, b := s.Min(), s.Max()
			r.DrawLine(px(a.X), px(a.Y), px(b.X), px(a.Y), s.Stroke)
			r.DrawLine(px(b.X), px(a.Y), px(b.X), px(b.Y), s.Stroke)
			r.DrawLine(px(b.X), px(b.Y), px(a.X), px(b.Y), s.Stroke)
			r.DrawLine(px(a.X), px(b.Y), px(a.X), px(a.Y), s.Stroke)
		}
	case *Line:
		drawThickLine(r, s)
	case *Triangle:
		v := s.Vertices()
		ring := make([][2]int, 0, 3)
		for _, p := range v {
			ring = append(ring, [2]int{px(p.X), px(p.Y)})
		}
		r.FillPolygon(ring, s.Fill)
	case *Text:
		for i, line := range s.Lines {
			r.PutText(s.Pos.X, s.Pos.Y+float64(i)*s.LineHeight, line, s.Fill)
		}
	}
}

// drawThickLine strokes parallel copies of the segment to approximate its width.
func drawThickLine(r *Raster, l *Line) {
	color := l.Stroke
	if color == "" {
		color = l.Fill
	}
	d := l.To.Sub(l.From)
	var n geom.Point
	if ln := d.Len(); ln > 0 {
		n = geom.Pt(-d.Y/ln, d.X/ln)
	}
	half := int(math.Max(0, (l.Width-1)/2))
	for k := -half; k <= half; k++ {
		o := n.Scale(float64(k))
		a, b := l.From.Add(o), l.To.Add(o)
		r.DrawLine(px(a.X), px(a.Y), px(b.X), px(b.Y), color)
	}
}

package callout

import (
	"math"

	"geolabel/internal/geom"
)

// Geometry is the pixel layout of one callout, derived from its anchor and
// offset. It is a cache: it is recomputed after every projection change.
type Geometry struct {
	Anchor geom.Point // arrow apex
	Center geom.Point // label box center
	Box    geom.Rect

	LineStart geom.Point
	LineEnd   geom.Point

	// ArrowAngle rotates the arrowhead clockwise, in degrees.
	ArrowAngle float64
}

// Offset is the vector from the anchor to the box center.
func (g Geometry) Offset() geom.Point { return g.Center.Sub(g.Anchor) }

// Size returns the label box size for a wrapped text block.
func Size(textW, textH float64, o Options) (w, h float64) {
	w = math.Max(textW, o.MinWidth) + o.Padding*2
	h = math.Max(textH, o.MinHeight) + o.Padding*2
	return w, h
}

// Compute lays out a label of size w x h whose box is centered at
// anchor+offset.
func Compute(anchor, offset geom.Point, w, h, clearance float64) Geometry {
	center := anchor.Add(offset)
	start, end, angle := connect(center, anchor, clearance)
	return Geometry{
		Anchor:     anchor,
		Center:     center,
		Box:        geom.RectAround(center, w, h),
		LineStart:  start,
		LineEnd:    end,
		ArrowAngle: angle,
	}
}

// connect runs a line from the box center toward the anchor, stopping
// clearance short of it, and returns the arrow rotation for that direction.
func connect(center, anchor geom.Point, clearance float64) (start, end geom.Point, angle float64) {
	theta := anchor.Sub(center).Angle()
	end = anchor.Sub(geom.Pt(math.Cos(theta), math.Sin(theta)).Scale(clearance))
	angle = end.Sub(center).Angle()
	if end == center {
		angle = theta
	}
	return center, end, angle*180/math.Pi + 90
}

package callout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"geolabel/internal/geom"
)

func TestComputeExample(t *testing.T) {
	g := Compute(geom.Pt(100, 100), geom.Pt(50, -50), 40, 20, 15)

	assert.Equal(t, geom.Pt(150, 50), g.Center)
	assert.Equal(t, geom.Pt(100, 100), g.Anchor)
	assert.Equal(t, geom.Rect{X: 130, Y: 40, W: 40, H: 20}, g.Box)
	assert.Equal(t, geom.Pt(150, 50), g.LineStart)

	d := 15 / math.Sqrt2
	assert.InDelta(t, 100+d, g.LineEnd.X, 1e-9)
	assert.InDelta(t, 100-d, g.LineEnd.Y, 1e-9)
	assert.InDelta(t, 15, g.Anchor.Sub(g.LineEnd).Len(), 1e-9)
	assert.InDelta(t, 225, g.ArrowAngle, 1e-9)
	assert.Equal(t, geom.Pt(50, -50), g.Offset())
}

func TestComputeIsDeterministic(t *testing.T) {
	a := Compute(geom.Pt(12.5, -3), geom.Pt(-40, 7), 33, 21, 15)
	b := Compute(geom.Pt(12.5, -3), geom.Pt(-40, 7), 33, 21, 15)
	assert.Equal(t, a, b)
}

func TestArrowAngleFollowsLine(t *testing.T) {
	cases := []struct {
		offset geom.Point
		angle  float64
	}{
		{geom.Pt(-100, 0), 90},  // label left, line points right
		{geom.Pt(0, -100), 180}, // label above, line points down
		{geom.Pt(100, 0), 270},  // label right, line points left
		{geom.Pt(0, 100), 0},    // label below, line points up
	}
	for _, c := range cases {
		g := Compute(geom.Pt(0, 0), c.offset, 10, 10, 15)
		assert.InDelta(t, c.angle, g.ArrowAngle, 1e-9, "offset %v", c.offset)
	}
}

func TestComputeZeroOffset(t *testing.T) {
	g := Compute(geom.Pt(10, 10), geom.Point{}, 10, 10, 15)
	assert.Equal(t, geom.Pt(-5, 10), g.LineEnd)
	assert.InDelta(t, 270, g.ArrowAngle, 1e-9)
}

func TestSize(t *testing.T) {
	o := DefaultOptions()
	w, h := Size(100, 10, o)
	assert.Equal(t, 170.0, w)
	assert.Equal(t, 40.0, h)
	w, h = Size(400, 60, o)
	assert.Equal(t, 420.0, w)
	assert.Equal(t, 80.0, h)
}

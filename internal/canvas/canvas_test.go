package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geolabel/internal/geom"
)

func TestAddRemoveIsIdempotent(t *testing.T) {
	c := NewTerminal()
	r := &Rect{Rect: geom.Rect{W: 4, H: 4}}
	l := &Line{To: geom.Pt(10, 10)}
	c.Add(r, l, r, nil)
	assert.Equal(t, []Shape{r, l}, c.Shapes())
	c.Remove(r, r, &Rect{})
	assert.Equal(t, []Shape{l}, c.Shapes())
	assert.False(t, c.Contains(r))
}

func TestHitTestPicksTopmostVisible(t *testing.T) {
	c := NewTerminal()
	bottom := &Rect{Rect: geom.Rect{W: 10, H: 10}}
	top := &Rect{Rect: geom.Rect{X: 5, Y: 5, W: 10, H: 10}}
	c.Add(bottom, top)
	assert.Same(t, top, c.HitTest(geom.Pt(6, 6)))
	assert.Same(t, bottom, c.HitTest(geom.Pt(1, 1)))
	assert.Nil(t, c.HitTest(geom.Pt(50, 50)))

	top.Hidden = true
	assert.Same(t, bottom, c.HitTest(geom.Pt(6, 6)))
}

func TestGroupHitsAndMovesAsUnit(t *testing.T) {
	box := &Rect{Rect: geom.Rect{W: 10, H: 6}}
	txt := &Text{Pos: geom.Pt(2, 1), Lines: []string{"hi"}, LineHeight: 4, Width: 4}
	g := NewGroup(box, txt)
	c := NewTerminal()
	c.Add(g)
	assert.Same(t, g, c.HitTest(geom.Pt(3, 2)))

	g.Translate(geom.Pt(5, 5))
	assert.Equal(t, geom.Rect{X: 5, Y: 5, W: 10, H: 6}, g.Bounds())
	assert.Equal(t, geom.Pt(7, 6), txt.Pos)
}

func TestDragLifecycleEvents(t *testing.T) {
	c := NewTerminal()
	r := &Rect{Rect: geom.Rect{W: 10, H: 10}}
	r.Draggable = true
	c.Add(r)

	var kinds []string
	for _, k := range []EventKind{PointerDown, PointerUp, ObjectMoving, ObjectModified} {
		c.On(k, func(e Event) { kinds = append(kinds, e.Kind.String()) })
	}

	require.True(t, c.PointerDown(geom.Pt(2, 2)))
	assert.Same(t, r, c.Dragging())
	assert.True(t, c.PointerMove(geom.Pt(5, 7)))
	assert.True(t, c.PointerUp(geom.Pt(5, 7)))
	assert.Nil(t, c.Dragging())

	assert.Equal(t, geom.Rect{X: 3, Y: 5, W: 10, H: 10}, r.Rect)
	assert.Equal(t, []string{"pointer:down", "object:moving", "pointer:up", "object:modified"}, kinds)
}

func TestClickWithoutMoveIsNotModified(t *testing.T) {
	c := NewTerminal()
	r := &Rect{Rect: geom.Rect{W: 10, H: 10}}
	r.Draggable = true
	c.Add(r)
	modified := 0
	c.On(ObjectModified, func(Event) { modified++ })
	c.PointerDown(geom.Pt(1, 1))
	c.PointerUp(geom.Pt(1, 1))
	assert.Zero(t, modified)
}

func TestNonDraggableDoesNotCapture(t *testing.T) {
	c := NewTerminal()
	r := &Rect{Rect: geom.Rect{W: 10, H: 10}}
	c.Add(r)
	assert.False(t, c.PointerDown(geom.Pt(1, 1)))
	assert.False(t, c.PointerMove(geom.Pt(4, 4)))
	assert.Equal(t, geom.Rect{W: 10, H: 10}, r.Rect)
}

func TestCancelSubscription(t *testing.T) {
	c := NewTerminal()
	n := 0
	cancel := c.On(PointerDown, func(Event) { n++ })
	c.PointerDown(geom.Pt(0, 0))
	cancel()
	c.PointerDown(geom.Pt(0, 0))
	assert.Equal(t, 1, n)
}

func TestTriangleVerticesAndContains(t *testing.T) {
	tr := &Triangle{Pos: geom.Pt(10, 10), Width: 4, Height: 6}
	v := tr.Vertices()
	assert.Equal(t, geom.Pt(10, 10), v[0])
	assert.InDelta(t, 8, v[1].X, 1e-9)
	assert.InDelta(t, 16, v[1].Y, 1e-9)
	assert.True(t, tr.Contains(geom.Pt(10, 14)))
	assert.False(t, tr.Contains(geom.Pt(10, 8)))

	// rotated 90 degrees the body trails to the left of the apex
	tr.Angle = 90
	assert.True(t, tr.Contains(geom.Pt(6, 10)))
	assert.False(t, tr.Contains(geom.Pt(14, 10)))
}

func TestLineContainsUsesStrokeWidth(t *testing.T) {
	l := &Line{From: geom.Pt(0, 0), To: geom.Pt(10, 0), Width: 4}
	assert.True(t, l.Contains(geom.Pt(5, 2)))
	assert.False(t, l.Contains(geom.Pt(5, 3)))
	assert.False(t, l.Contains(geom.Pt(13, 0)))
}

func TestRasterBrailleDots(t *testing.T) {
	r := NewRaster(2, 1)
	r.SetPixel(0, 0, "")
	r.SetPixel(1, 3, "")
	r.SetPixel(-1, 0, "")
	r.SetPixel(99, 0, "")
	assert.Equal(t, []string{string(rune(0x2800+0x01+0x80)) + " "}, r.Plain())
}

func TestRasterTextAndFill(t *testing.T) {
	r := NewRaster(6, 2)
	r.DrawLine(0, 0, 11, 0, "#fff")
	r.FillRect(geom.Rect{X: 0, Y: 0, W: 12, H: 4}, "#000")
	r.PutText(2, 0, "ab", "#fff")
	assert.Equal(t, " ab   ", r.Plain()[0])
	// text is not overwritten by later dots
	r.SetPixel(2, 0, "")
	assert.Equal(t, " ab   ", r.Plain()[0])
}

func TestRenderDrawsLabelLikeScene(t *testing.T) {
	c := NewTerminal()
	box := &Rect{Rect: geom.Rect{X: 0, Y: 0, W: 20, H: 8}}
	box.Fill = "#2c91a9"
	txt := &Text{Pos: geom.Pt(4, 2), Lines: []string{"hello"}, LineHeight: CellHeight, Width: 10}
	txt.Fill = "#ffffff"
	line := &Line{From: geom.Pt(10, 4), To: geom.Pt(30, 20), Width: 1}
	line.Stroke = "#2c91a9"
	arrow := &Triangle{Pos: geom.Pt(36, 24), Width: 4, Height: 4, Angle: 135}
	arrow.Fill = "#2c91a9"
	c.Add(line, NewGroup(box, txt), arrow)

	r := NewRaster(20, 8)
	c.Render(r)
	plain := strings.Join(r.Plain(), "\n")
	assert.Contains(t, plain, "hello")
	assert.Len(t, r.Lines(), 8)
	assert.Equal(t, 10.0, CellMeasure("hello"))
	assert.Equal(t, 8.0, CellMeasure("世界"))
}

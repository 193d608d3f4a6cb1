// Package canvas is a small retained-mode scene: shapes are added once, then
// moved, hit-tested and drawn on demand. Pointer input drives drags of
// draggable shapes and is reported back through event handlers.
package canvas

import (
	"slices"

	"geolabel/internal/geom"
)

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	// ObjectMoving fires for every pointer move while a shape is dragged.
	ObjectMoving
	// ObjectModified fires once when a drag that moved its target ends.
	ObjectModified
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer:down"
	case PointerMove:
		return "pointer:move"
	case PointerUp:
		return "pointer:up"
	case ObjectMoving:
		return "object:moving"
	case ObjectModified:
		return "object:modified"
	}
	return "unknown"
}

// Event is delivered to handlers. Target is the shape under the pointer for
// pointer events and the dragged shape for object events; it may be nil.
type Event struct {
	Kind   EventKind
	Point  geom.Point
	Target Shape
}

type Handler func(Event)

// MeasureFunc returns the rendered width of a single line of text.
type MeasureFunc func(s string) float64

type subscription struct {
	id   int
	kind EventKind
	fn   Handler
}

// Canvas holds shapes in paint order.
type Canvas struct {
	shapes []Shape

	subs   []subscription
	nextID int

	measure    MeasureFunc
	lineHeight float64

	dragging Shape
	last     geom.Point
	moved    bool
}

// New returns an empty canvas measuring text with measure; lineHeight is the
// vertical advance of one text line in the same units.
func New(measure MeasureFunc, lineHeight float64) *Canvas {
	return &Canvas{measure: measure, lineHeight: lineHeight}
}

func (c *Canvas) Measure(s string) float64 { return c.measure(s) }
func (c *Canvas) LineHeight() float64      { return c.lineHeight }

// Add appends shapes on top of the scene. Shapes already present are skipped.
func (c *Canvas) Add(shapes ...Shape) {
	for _, s := range shapes {
		if s == nil || c.Contains(s) {
			continue
		}
		c.shapes = append(c.shapes, s)
	}
}

// Remove drops shapes from the scene; unknown shapes are ignored.
func (c *Canvas) Remove(shapes ...Shape) {
	c.shapes = slices.DeleteFunc(c.shapes, func(s Shape) bool {
		return slices.Contains(shapes, s)
	})
	if c.dragging != nil && !c.Contains(c.dragging) {
		c.dragging = nil
	}
}

func (c *Canvas) Contains(s Shape) bool { return slices.Contains(c.shapes, s) }

// Shapes returns the scene in paint order.
func (c *Canvas) Shapes() []Shape { return slices.Clone(c.shapes) }

// HitTest returns the topmost visible shape containing p, or nil.
func (c *Canvas) HitTest(p geom.Point) Shape {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		s := c.shapes[i]
		if s.props().Hidden {
			continue
		}
		if s.Contains(p) {
			return s
		}
	}
	return nil
}

// On subscribes h to events of the given kind.
func (c *Canvas) On(kind EventKind, h Handler) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, kind: kind, fn: h})
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscription) bool { return s.id == id })
	}
}

func (c *Canvas) emit(e Event) {
	for _, s := range slices.Clone(c.subs) {
		if s.kind == e.Kind {
			s.fn(e)
		}
	}
}

// PointerDown reports whether a draggable shape captured the pointer.
func (c *Canvas) PointerDown(p geom.Point) bool {
	target := c.HitTest(p)
	c.emit(Event{Kind: PointerDown, Point: p, Target: target})
	if target != nil && target.props().Draggable {
		c.dragging, c.last, c.moved = target, p, false
		return true
	}
	return false
}

// PointerMove drags the captured shape, if any, and reports whether one is held.
func (c *Canvas) PointerMove(p geom.Point) bool {
	if c.dragging == nil {
		c.emit(Event{Kind: PointerMove, Point: p, Target: c.HitTest(p)})
		return false
	}
	if d := p.Sub(c.last); d.X != 0 || d.Y != 0 {
		c.dragging.Translate(d)
		c.last = p
		c.moved = true
		c.emit(Event{Kind: ObjectMoving, Point: p, Target: c.dragging})
	}
	c.emit(Event{Kind: PointerMove, Point: p, Target: c.dragging})
	return true
}

// PointerUp ends any drag and reports whether a shape was held.
func (c *Canvas) PointerUp(p geom.Point) bool {
	target, moved := c.dragging, c.moved
	c.dragging, c.moved = nil, false
	if target == nil {
		c.emit(Event{Kind: PointerUp, Point: p, Target: c.HitTest(p)})
		return false
	}
	c.emit(Event{Kind: PointerUp, Point: p, Target: target})
	if moved {
		c.emit(Event{Kind: ObjectModified, Point: p, Target: target})
	}
	return true
}

// Dragging returns the shape currently held by the pointer.
func (c *Canvas) Dragging() Shape { return c.dragging }

// Package callout draws text boxes that point at a geographic coordinate with
// a line and an arrowhead, and keeps them in place as the map moves.
package callout

import (
	"geolabel/internal/canvas"
	"geolabel/internal/geom"
)

// Projection converts between geographic coordinates and surface pixels for
// the current map view.
type Projection interface {
	Project(geom.LatLng) geom.Point
	Unproject(geom.Point) geom.LatLng
}

// Map is the part of the host map a label needs.
type Map interface {
	Projection
	SetDraggable(bool)
}

// Surface is the rendering surface labels draw on.
type Surface interface {
	Add(shapes ...canvas.Shape)
	Remove(shapes ...canvas.Shape)
	Measure(s string) float64
	LineHeight() float64
	On(kind canvas.EventKind, h canvas.Handler) (cancel func())
}

// Label is one callout. Its anchor and offset are the source of truth; the
// shapes on the surface are re-derived from them on every view change.
type Label struct {
	opts Options

	anchor geom.LatLng
	offset geom.Point
	text   string
	lines  []string
	w, h   float64

	geo Geometry

	box   *canvas.Rect
	body  *canvas.Text
	group *canvas.Group
	line  *canvas.Line
	arrow *canvas.Triangle

	surface Surface
	host    Map
	cancels []func()
	held    canvas.Shape
}

// New builds a detached label. Zero sizes and colors in opts take their
// DefaultOptions values.
func New(opts Options) *Label {
	o := opts.withDefaults()
	l := &Label{opts: o, anchor: o.Anchor, offset: o.Offset, text: o.Text}

	l.box = &canvas.Rect{Radius: 4}
	l.box.Fill = o.Fill
	l.body = &canvas.Text{}
	l.body.Fill = o.TextColor
	l.group = canvas.NewGroup(l.box, l.body)
	l.group.Draggable = !o.ReadOnly

	l.line = &canvas.Line{Width: o.LineWidth}
	l.line.Stroke = o.Fill
	l.arrow = &canvas.Triangle{Width: o.ArrowSize, Height: o.ArrowSize}
	l.arrow.Fill = o.Fill
	l.arrow.Draggable = !o.ReadOnly

	l.w, l.h = Size(0, 0, o)
	return l
}

// Attach puts the label on a surface. Attaching an attached label moves it;
// a nil surface or map detaches it.
func (l *Label) Attach(s Surface, m Map) {
	l.Detach()
	if s == nil || m == nil {
		return
	}
	l.surface, l.host = s, m
	if !l.opts.ReadOnly {
		l.cancels = append(l.cancels,
			s.On(canvas.PointerDown, l.onPointerDown),
			s.On(canvas.PointerUp, l.onPointerUp),
			s.On(canvas.ObjectMoving, l.onMoving),
			s.On(canvas.ObjectModified, l.onModified),
		)
	}
	l.UpdatePosition()
	l.SetText(l.text)
	s.Add(l.line, l.group, l.arrow)
}

// Detach removes the label's shapes and event handlers from its surface.
func (l *Label) Detach() {
	if l.surface == nil {
		return
	}
	for _, cancel := range l.cancels {
		cancel()
	}
	l.cancels = nil
	l.surface.Remove(l.line, l.group, l.arrow)
	l.surface, l.host, l.held = nil, nil, nil
}

func (l *Label) Attached() bool { return l.surface != nil }

// SetText rewraps t and resizes the box around its current center.
func (l *Label) SetText(t string) {
	l.text = t
	if l.surface == nil {
		return
	}
	lh := l.surface.LineHeight()
	l.lines = Wrap(t, l.opts.MaxWidth, l.surface.Measure)
	var tw float64
	for _, ln := range l.lines {
		tw = max(tw, l.surface.Measure(ln))
	}
	l.body.Lines, l.body.Width, l.body.LineHeight = l.lines, tw, lh
	l.w, l.h = Size(tw, float64(len(l.lines))*lh, l.opts)
	l.layout(l.geo.Anchor, l.geo.Center)
}

// UpdatePosition re-projects the anchor and lays the label out around it.
func (l *Label) UpdatePosition() {
	if l.host == nil {
		return
	}
	a := l.host.Project(l.anchor)
	l.layout(a, a.Add(l.offset))
}

func (l *Label) layout(anchor, center geom.Point) {
	l.geo = Compute(anchor, center.Sub(anchor), l.w, l.h, l.opts.Clearance)
	l.box.Rect = l.geo.Box
	l.body.Pos = l.geo.Box.Min().Add(geom.Pt(l.opts.Padding, l.opts.Padding))
	l.line.From, l.line.To = l.geo.LineStart, l.geo.LineEnd
	l.arrow.Pos, l.arrow.Angle = anchor, l.geo.ArrowAngle
}

func (l *Label) owns(s canvas.Shape) bool {
	return s != nil && (s == l.group || s == l.arrow)
}

func (l *Label) onPointerDown(e canvas.Event) {
	l.held = nil
	if l.owns(e.Target) {
		l.held = e.Target
		l.host.SetDraggable(false)
	}
}

func (l *Label) onPointerUp(canvas.Event) {
	l.host.SetDraggable(true)
}

// onMoving keeps the line and arrow glued to the shape being dragged.
func (l *Label) onMoving(e canvas.Event) {
	if l.owns(e.Target) {
		l.layout(l.arrow.Pos, l.box.Center())
	}
}

// onModified stores the dragged position. Moving the box only changes the
// offset; moving the arrow re-anchors the label and leaves the box in place.
func (l *Label) onModified(e canvas.Event) {
	if !l.owns(e.Target) {
		return
	}
	apex, center := l.arrow.Pos, l.box.Center()
	if e.Target == l.arrow {
		l.anchor = l.host.Unproject(apex)
	}
	l.offset = center.Sub(apex)
	l.layout(apex, center)
	l.held = nil
	if l.opts.OnChange != nil {
		l.opts.OnChange(l.State())
	}
}

// State returns the logical position for the caller to persist.
func (l *Label) State() State {
	return State{Anchor: l.anchor, Offset: l.offset, Text: l.text}
}

// Geometry returns the last computed pixel layout.
func (l *Label) Geometry() Geometry { return l.geo }

func (l *Label) Lines() []string  { return l.lines }
func (l *Label) Text() string     { return l.text }
func (l *Label) ReadOnly() bool   { return l.opts.ReadOnly }
func (l *Label) Options() Options { return l.opts }
func (l *Label) Dragging() bool   { return l.held != nil }

// Contains reports whether p hits the box, the line or the arrow.
func (l *Label) Contains(p geom.Point) bool {
	return l.group.Contains(p) || l.arrow.Contains(p) || l.line.Contains(p)
}

// SetOutline strokes the box border, e.g. to mark a selection. An empty
// color removes it.
func (l *Label) SetOutline(color string) { l.box.Stroke = color }

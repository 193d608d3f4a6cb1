// Package export writes the map and its labels to SVG and PNG images.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"geolabel/internal/canvas"
	"geolabel/internal/geom"
)

const (
	DefaultBackground = "#ffffff"
	DefaultBasemap    = "#9aa5b1"
	DefaultFontSize   = 14
)

// Projector places base map coordinates on the image.
type Projector interface {
	Project(geom.LatLng) geom.Point
}

// Scene is everything drawn into one image, back to front: background, base
// map, then shapes in order.
type Scene struct {
	Width, Height int

	Background   string
	BasemapColor string
	Basemap      geom.Data
	Projection   Projector

	Shapes   []canvas.Shape
	FontSize float64
}

var errNoSize = errors.New("scene has no size")

func (s Scene) withDefaults() Scene {
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	if s.BasemapColor == "" {
		s.BasemapColor = DefaultBasemap
	}
	if s.FontSize == 0 {
		s.FontSize = DefaultFontSize
	}
	return s
}

// SVG writes the scene as an SVG document.
func SVG(w io.Writer, s Scene) error {
	if s.Width <= 0 || s.Height <= 0 {
		return errNoSize
	}
	writeSVG(w, s.withDefaults(), true)
	return nil
}

func writeSVG(w io.Writer, s Scene, text bool) {
	doc := svg.New(w)
	doc.Startview(s.Width, s.Height, 0, 0, s.Width, s.Height)
	doc.Rect(0, 0, s.Width, s.Height, "fill:"+s.Background)
	if s.Projection != nil {
		drawBasemap(doc, s)
	}
	for _, sh := range s.Shapes {
		drawShape(doc, sh, s, text)
	}
	doc.End()
}

func px(v float64) int { return int(math.Round(v)) }

func (s Scene) project(p [2]float64) (int, int) {
	pt := s.Projection.Project(geom.LatLng{Lat: p[1], Lng: p[0]})
	return px(pt.X), px(pt.Y)
}

func (s Scene) ring(r [][2]float64) (xs, ys []int) {
	for _, p := range r {
		x, y := s.project(p)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func drawBasemap(doc *svg.SVG, s Scene) {
	doc.Gstyle(fmt.Sprintf("stroke:%s;stroke-width:1", s.BasemapColor))
	for _, poly := range s.Basemap.Polygons {
		for i, r := range poly {
			xs, ys := s.ring(r)
			// holes are cut back out with the background
			fill := s.BasemapColor
			if i > 0 {
				fill = s.Background
			}
			doc.Polygon(xs, ys, "fill:"+fill+";fill-opacity:0.35")
		}
	}
	for _, ln := range s.Basemap.Lines {
		xs, ys := s.ring(ln)
		doc.Polyline(xs, ys, "fill:none")
	}
	for _, p := range s.Basemap.Points {
		x, y := s.project(p)
		doc.Circle(x, y, 2, "fill:"+s.BasemapColor)
	}
	doc.Gend()
}

func drawShape(doc *svg.SVG, sh canvas.Shape, s Scene, text bool) {
	switch v := sh.(type) {
	case *canvas.Group:
		if v.Hidden {
			return
		}
		doc.Group()
		for _, c := range v.Children {
			drawShape(doc, c, s, text)
		}
		doc.Gend()
	case *canvas.Rect:
		if v.Hidden {
			return
		}
		r := px(v.Radius)
		doc.Roundrect(px(v.X), px(v.Y), px(v.W), px(v.H), r, r, paint(v.Fill, v.Stroke, 2))
	case *canvas.Line:
		if v.Hidden {
			return
		}
		doc.Line(px(v.From.X), px(v.From.Y), px(v.To.X), px(v.To.Y),
			fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-linecap:round", lineColor(v), v.Width))
	case *canvas.Triangle:
		if v.Hidden {
			return
		}
		var xs, ys []int
		for _, p := range v.Vertices() {
			xs = append(xs, px(p.X))
			ys = append(ys, px(p.Y))
		}
		doc.Polygon(xs, ys, paint(v.Fill, v.Stroke, 1))
	case *canvas.Text:
		if v.Hidden || !text {
			return
		}
		style := fmt.Sprintf("font-family:Go,sans-serif;font-size:%gpx;fill:%s", s.FontSize, v.Fill)
		for i, ln := range v.Lines {
			doc.Text(px(v.Pos.X), px(baseline(v, i)), ln, style)
		}
	}
}

// baseline is the y of line i of a text block, a fixed share of the line
// height below its top.
func baseline(t *canvas.Text, i int) float64 {
	return t.Pos.Y + float64(i)*t.LineHeight + t.LineHeight*0.75
}

func paint(fill, stroke string, width float64) string {
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		return "fill:" + fill + ";stroke:none"
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, width)
}

func lineColor(l *canvas.Line) string {
	if l.Stroke != "" {
		return l.Stroke
	}
	if l.Fill != "" {
		return l.Fill
	}
	return "#000000"
}

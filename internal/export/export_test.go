package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geolabel/internal/callout"
	"geolabel/internal/canvas"
	"geolabel/internal/geom"
	"geolabel/internal/mapview"
)

func labelScene(t *testing.T, text string) (Scene, *callout.Label) {
	t.Helper()
	face, err := NewFace(DefaultFontSize)
	require.NoError(t, err)

	v := mapview.New()
	v.Resize(640, 480)
	c := canvas.New(FaceMeasure(face), LineHeight(face))

	o := callout.DefaultOptions()
	o.Anchor = geom.LatLng{Lat: 0, Lng: 0}
	o.Offset = geom.Pt(0, -150)
	o.Text = text
	l := callout.New(o)
	l.Attach(c, v)

	return Scene{
		Width:      640,
		Height:     480,
		Projection: v,
		Basemap: geom.Data{
			Lines:    [][][2]float64{{{-170, -80}, {170, 80}}},
			Polygons: [][][][2]float64{{{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}}},
			Points:   [][2]float64{{50, 50}},
		},
		Shapes: c.Shapes(),
	}, l
}

func TestFaceMeasure(t *testing.T) {
	face, err := NewFace(14)
	require.NoError(t, err)
	m := FaceMeasure(face)
	assert.Zero(t, m(""))
	assert.Greater(t, m("hello"), 0.0)
	assert.Greater(t, m("hello world"), m("hello"))
	assert.Greater(t, LineHeight(face), 0.0)
}

func TestSVG(t *testing.T) {
	s, _ := labelScene(t, "Fish & <chips>")
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `viewBox="0 0 640 480"`)
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "#2c91a9")
	assert.Contains(t, out, "stroke-width:7")
	assert.Contains(t, out, "Fish &amp; &lt;chips&gt;")
	assert.Equal(t, 2, strings.Count(out, "<polygon"), "basemap polygon and arrowhead")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestSVGSkipsHidden(t *testing.T) {
	r := &canvas.Rect{Rect: geom.Rect{X: 1, Y: 1, W: 5, H: 5}}
	r.Fill = "#123456"
	r.Hidden = true
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, Scene{Width: 10, Height: 10, Shapes: []canvas.Shape{r}}))
	assert.NotContains(t, buf.String(), "#123456")
}

func TestNoSize(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, SVG(&buf, Scene{}), errNoSize)
	assert.ErrorIs(t, PNG(&buf, Scene{Height: 3}, nil), errNoSize)
}

func TestPNG(t *testing.T) {
	s, l := labelScene(t, "Label")
	face, err := NewFace(DefaultFontSize)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, s, face))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	// inside the top padding of the box: plain fill
	box := l.Geometry().Box
	r, g, b, _ := img.At(int(box.X+box.W/2), int(box.Y+3)).RGBA()
	assert.InDelta(t, 0x2c, r>>8, 2)
	assert.InDelta(t, 0x91, g>>8, 2)
	assert.InDelta(t, 0xa9, b>>8, 2)

	// white text blended over the fill somewhere in the text block
	opts := l.Options()
	found := false
	for y := int(box.Y + opts.Padding); y < int(box.Y+box.H-opts.Padding) && !found; y++ {
		for x := int(box.X + opts.Padding); x < int(box.X+box.W-opts.Padding); x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 > 0x90 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "label text was not drawn")

	// far corner keeps the background
	r, g, b, _ = img.At(630, 5).RGBA()
	assert.Equal(t, []uint32{0xff, 0xff, 0xff}, []uint32{r >> 8, g >> 8, b >> 8})
}

package geom

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKT(t *testing.T) {
	d, err := ParseWKT("POINT (10 20)")
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{10, 20}}, d.Points)
	assert.Equal(t, BBox{MinX: 10, MinY: 20, MaxX: 10, MaxY: 20}, d.BBox)

	d, err = ParseWKT("MULTIPOINT ((1 2), (3 4))")
	require.NoError(t, err)
	assert.Len(t, d.Points, 2)

	d, err = ParseWKT("linestring(0 0, 5 5, bad tuple, 10 -2)")
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Len(t, d.Lines[0], 3)
	assert.Equal(t, BBox{MinX: 0, MinY: -2, MaxX: 10, MaxY: 5}, d.BBox)

	d, err = ParseWKT("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))")
	require.NoError(t, err)
	require.Len(t, d.Polygons, 1)
	assert.Len(t, d.Polygons[0], 2)
}

func TestParseWKTErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "CIRCLE(1 2)", "POINT 1 2", "LINESTRING(a b)"} {
		_, err := ParseWKT(in)
		assert.Error(t, err, in)
	}
}

func TestParseGeoJSON(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[-9,39]}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},
		{"type":"Feature","geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[2,0],[2,2],[0,0]]]]}},
		{"type":"Feature","geometry":null}
	]}`
	d, err := ParseGeoJSON([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, d.Points, 1)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Polygons, 1)
	assert.Equal(t, BBox{MinX: -9, MinY: 0, MaxX: 2, MaxY: 39}, d.BBox)

	d, err = ParseGeoJSON([]byte(`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`))
	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)

	_, err = ParseGeoJSON([]byte(`{"coordinates":[1,2]}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	in := "name, Latitude, LNG\na, 39.5, -9\nb, oops, 1\nc, 40, -8\n"
	d, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{-9, 39.5}, {-8, 40}}, d.Points)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.ErrorContains(t, err, "columns not found")
}

func TestParseKML(t *testing.T) {
	in := `<kml><Document>
		<Placemark><Point><coordinates>-9,39,0</coordinates></Point></Placemark>
		<Placemark><name>no point</name></Placemark>
	</Document></kml>`
	d, err := ParseKML([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{-9, 39}}, d.Points)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "route.wkt")
	require.NoError(t, os.WriteFile(p, []byte("LINESTRING(0 0, 1 1)"), 0o644))
	d, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)

	bad := filepath.Join(dir, "x.shp")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "unsupported")
}

func TestPointAndRect(t *testing.T) {
	p := Pt(3, 4)
	assert.Equal(t, 5.0, p.Len())
	assert.Equal(t, Pt(4, 6), p.Add(Pt(1, 2)))
	assert.Equal(t, Pt(2, 2), p.Sub(Pt(1, 2)))

	r := Pt(0, 1).Rotate(90)
	assert.InDelta(t, -1, r.X, 1e-9)
	assert.InDelta(t, 0, r.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, Pt(0, 1).Angle(), 1e-9)

	box := RectAround(Pt(150, 50), 20, 10)
	assert.Equal(t, Rect{X: 140, Y: 45, W: 20, H: 10}, box)
	assert.Equal(t, Pt(150, 50), box.Center())
	assert.True(t, box.Contains(Pt(140, 45)))
	assert.False(t, box.Contains(Pt(139, 45)))
	assert.Equal(t, Rect{X: 0, Y: 0, W: 160, H: 55}, box.Union(Rect{W: 1, H: 1}))
}

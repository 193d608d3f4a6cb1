package geom

import (
	"encoding/json"
	"errors"
)

func parsePosition(v any) ([2]float64, bool) {
	if a, ok := v.([]any); ok && len(a) >= 2 {
		lon, lok := a[0].(float64)
		lat, aok := a[1].(float64)
		if lok && aok {
			return [2]float64{lon, lat}, true
		}
	}
	return [2]float64{}, false
}

func parsePositions(v any) [][2]float64 {
	arr, _ := v.([]any)
	var pts [][2]float64
	for _, el := range arr {
		if pt, ok := parsePosition(el); ok {
			pts = append(pts, pt)
		}
	}
	return pts
}

func parseRings(v any) [][][2]float64 {
	arr, _ := v.([]any)
	var rings [][][2]float64
	for _, el := range arr {
		if ring := parsePositions(el); len(ring) > 0 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// ParseGeoJSON decodes a GeoJSON document into Data (points, lines, polygons).
// Feature, FeatureCollection and bare geometries are accepted.
func ParseGeoJSON(raw []byte) (Data, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Data{}, err
	}
	var b dataBuilder
	var walk func(g map[string]any)
	walk = func(g map[string]any) {
		coords := g["coordinates"]
		switch g["type"] {
		case "Point":
			if pt, ok := parsePosition(coords); ok {
				b.point(pt)
			}
		case "MultiPoint":
			for _, p := range parsePositions(coords) {
				b.point(p)
			}
		case "LineString":
			if ls := parsePositions(coords); len(ls) > 0 {
				b.line(ls)
			}
		case "MultiLineString":
			for _, ls := range parseRings(coords) {
				b.line(ls)
			}
		case "Polygon":
			if poly := parseRings(coords); len(poly) > 0 {
				b.polygon(poly)
			}
		case "MultiPolygon":
			arr, _ := coords.([]any)
			for _, el := range arr {
				if poly := parseRings(el); len(poly) > 0 {
					b.polygon(poly)
				}
			}
		case "GeometryCollection":
			gs, _ := g["geometries"].([]any)
			for _, el := range gs {
				if gm, ok := el.(map[string]any); ok {
					walk(gm)
				}
			}
		}
	}
	switch doc["type"] {
	case "Feature":
		if g, ok := doc["geometry"].(map[string]any); ok {
			walk(g)
		}
	case "FeatureCollection":
		fs, _ := doc["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				if g, ok := fm["geometry"].(map[string]any); ok {
					walk(g)
				}
			}
		}
	case nil:
		return Data{}, errors.New("invalid geojson: missing type")
	default:
		walk(doc)
	}
	d := b.data()
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

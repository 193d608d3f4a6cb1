package geom

import (
	"errors"
	"strconv"
	"strings"
)

// parseTuples reads "x y, x y, ..." and skips tuples that do not parse.
func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}

// between returns the text between the first open and the last close delimiter.
func between(s, open, close string) (string, bool) {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, close)
	if i < 0 || j <= i {
		return "", false
	}
	return s[i+len(open) : j], true
}

// ParseWKT parses a subset of WKT into Data.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...), POLYGON((x y, ...), (...))
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var b dataBuilder
	switch {
	case strings.HasPrefix(up, "POINT"), strings.HasPrefix(up, "MULTIPOINT"):
		body, ok := between(s, "(", ")")
		if !ok {
			return Data{}, errors.New("wkt point: invalid")
		}
		// MULTIPOINT((1 2), (3 4)) is legal too
		body = strings.NewReplacer("(", "", ")", "").Replace(body)
		for _, p := range parseTuples(body) {
			b.point(p)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		body, ok := between(s, "(", ")")
		if !ok {
			return Data{}, errors.New("wkt linestring: invalid")
		}
		if ls := parseTuples(body); len(ls) > 0 {
			b.line(ls)
		}
	case strings.HasPrefix(up, "POLYGON"):
		body, ok := between(s, "((", "))")
		if !ok {
			return Data{}, errors.New("wkt polygon: invalid")
		}
		// normalize spaces around ring separators
		body = strings.ReplaceAll(body, ") , (", "),(")
		body = strings.ReplaceAll(body, "), (", "),(")
		var poly [][][2]float64
		for _, ring := range strings.Split(body, "),(") {
			if pts := parseTuples(ring); len(pts) > 0 {
				poly = append(poly, pts)
			}
		}
		if len(poly) > 0 {
			b.polygon(poly)
		}
	default:
		return Data{}, errors.New("unsupported wkt type")
	}
	d := b.data()
	if d.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

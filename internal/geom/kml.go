package geom

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
)

// ParseKML extracts Point coordinates (Placemark > Point > coordinates).
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func ParseKML(raw []byte) (Data, error) {
	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return Data{}, err
	}
	var b dataBuilder
	for _, pm := range append(doc.Placemarks, doc.Document.Placemarks...) {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by spaces
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			b.point([2]float64{lon, lat})
		}
	}
	d := b.data()
	if d.Empty() {
		return Data{}, errors.New("kml: no points found")
	}
	return d, nil
}

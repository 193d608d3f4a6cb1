package geom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

// Load reads a base map file, picking the parser from the extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	var d Data
	switch ext {
	case ".geojson", ".json":
		d, err = ParseGeoJSON(raw)
	case ".csv":
		d, err = ReadCSV(bytes.NewReader(raw))
	case ".kml":
		d, err = ParseKML(raw)
	case ".wkt":
		d, err = ParseWKT(string(raw))
	default:
		return Data{}, fmt.Errorf("unsupported file: %s", ext)
	}
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

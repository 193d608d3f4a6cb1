package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geolabel/internal/config"
)

func TestRenderWritesImages(t *testing.T) {
	dir := t.TempDir()
	basemap := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(basemap, []byte("lat,lon\n10,20\n-10,-20\n"), 0o644))

	cfg := config.Default()
	cfg.Basemap = basemap
	cfg.Labels = []config.Seed{{Lat: 0, Lng: 0, DX: 40, DY: -80, Text: "Null Island"}}

	o := renderOptions{
		width: 400, height: 300, fontSize: 14,
		svgPath: filepath.Join(dir, "out.svg"),
		pngPath: filepath.Join(dir, "out.png"),
	}
	require.NoError(t, render(cfg, o))

	svg, err := os.ReadFile(o.svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Null Island")
	assert.Contains(t, string(svg), "<circle")

	b, err := os.ReadFile(o.pngPath)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	assert.ErrorContains(t, render(config.Default(), renderOptions{width: 10, height: 10}), "nothing to write")

	o := renderOptions{width: 0, height: 10, svgPath: filepath.Join(t.TempDir(), "x.svg")}
	assert.ErrorContains(t, render(config.Default(), o), "invalid size")

	o = renderOptions{width: 10, height: 10, fontSize: 12, basemap: "missing.wkt", svgPath: filepath.Join(t.TempDir(), "x.svg")}
	assert.ErrorContains(t, render(config.Default(), o), "failed to load base map")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", config.Terminal())
	require.NoError(t, err)
	assert.Equal(t, config.Terminal(), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), config.Default())
	assert.ErrorContains(t, err, "failed to load config")
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "loglevel", "log-level", "json-logs"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)
	for _, name := range []string{"width", "height", "svg", "png", "font-size", "basemap"} {
		assert.NotNil(t, render.Flags().Lookup(name), name)
	}
}

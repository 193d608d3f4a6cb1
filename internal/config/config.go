// Package config loads label defaults and seed labels from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"geolabel/internal/callout"
	"geolabel/internal/geom"
)

// Label holds the defaults applied to every label. Sizes are in surface
// units: pixels for the image exporters, braille micro-pixels in the terminal.
type Label struct {
	DX        float64 `yaml:"dx"`
	DY        float64 `yaml:"dy"`
	MinWidth  float64 `yaml:"min_width"`
	MaxWidth  float64 `yaml:"max_width"`
	MinHeight float64 `yaml:"min_height"`
	Padding   float64 `yaml:"padding"`
	ArrowSize float64 `yaml:"arrow_size"`
	LineWidth float64 `yaml:"line_width"`
	Clearance float64 `yaml:"clearance"`
	Fill      string  `yaml:"fill"`
	TextColor string  `yaml:"text_color"`
	Text      string  `yaml:"text"`
}

// Seed is a label to create at startup.
type Seed struct {
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Text     string  `yaml:"text"`
	ReadOnly bool    `yaml:"read_only"`
}

type Config struct {
	RetryDelay time.Duration `yaml:"retry_delay"`
	Basemap    string        `yaml:"basemap"`
	Label      Label         `yaml:"label"`
	Labels     []Seed        `yaml:"labels"`
}

// Default returns the pixel defaults of the original web widget.
func Default() Config {
	d := callout.DefaultOptions()
	return Config{
		RetryDelay: callout.DefaultRetryDelay,
		Label: Label{
			DX:        d.Offset.X,
			DY:        d.Offset.Y,
			MinWidth:  d.MinWidth,
			MaxWidth:  d.MaxWidth,
			MinHeight: d.MinHeight,
			Padding:   d.Padding,
			ArrowSize: d.ArrowSize,
			LineWidth: d.LineWidth,
			Clearance: d.Clearance,
			Fill:      d.Fill,
			TextColor: d.TextColor,
			Text:      d.Text,
		},
	}
}

// Terminal returns defaults scaled to braille micro-pixels, where a cell is
// 2 wide and 4 tall.
func Terminal() Config {
	c := Default()
	c.Label.DX, c.Label.DY = 24, -24
	c.Label.MinWidth = 24
	c.Label.MaxWidth = 48
	c.Label.MinHeight = 4
	c.Label.Padding = 4
	c.Label.ArrowSize = 8
	c.Label.LineWidth = 1
	c.Label.Clearance = 6
	c.Label.Text = "New label"
	return c
}

// Load reads path over base. Keys missing from the file keep their base
// values.
func Load(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return Parse(b, base)
}

func Parse(b []byte, base Config) (Config, error) {
	c := base
	if err := yaml.Unmarshal(b, &c); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	if c.RetryDelay < 0 {
		return base, fmt.Errorf("retry_delay must not be negative, got %s", c.RetryDelay)
	}
	return c, nil
}

// Options builds label options for a seed. A seed without dx and dy takes the
// default offset and one without text the default text.
func (c Config) Options(s Seed) callout.Options {
	l := c.Label
	o := callout.Options{
		Anchor:    geom.LatLng{Lat: s.Lat, Lng: s.Lng},
		Offset:    geom.Pt(l.DX, l.DY),
		Text:      l.Text,
		MinWidth:  l.MinWidth,
		MaxWidth:  l.MaxWidth,
		MinHeight: l.MinHeight,
		Padding:   l.Padding,
		ArrowSize: l.ArrowSize,
		LineWidth: l.LineWidth,
		Clearance: l.Clearance,
		ReadOnly:  s.ReadOnly,
		Fill:      l.Fill,
		TextColor: l.TextColor,
	}
	if s.DX != 0 || s.DY != 0 {
		o.Offset = geom.Pt(s.DX, s.DY)
	}
	if s.Text != "" {
		o.Text = s.Text
	}
	return o
}

// Seeds returns label options for every configured seed.
func (c Config) Seeds() []callout.Options {
	out := make([]callout.Options, 0, len(c.Labels))
	for _, s := range c.Labels {
		out = append(out, c.Options(s))
	}
	return out
}

package callout

import "geolabel/internal/geom"

// State is the logical position of a label: what a caller stores to rebuild
// it later. Pixel geometry is never part of it.
type State struct {
	Anchor geom.LatLng
	Offset geom.Point
	Text   string
}

// Options configure a Label. Sizes are in surface units (pixels for the
// image exporters, micro-pixels for the terminal).
type Options struct {
	Anchor geom.LatLng
	// Offset is the vector from the anchor to the center of the label box.
	Offset geom.Point
	Text   string

	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	Padding   float64

	ArrowSize float64
	LineWidth float64
	// Clearance keeps the line end this far from the anchor so the arrowhead
	// does not overlap it.
	Clearance float64

	ReadOnly bool
	// OnChange is called with the new state after the user moved the label
	// or its arrow.
	OnChange func(State)

	Fill      string
	TextColor string
}

const DefaultText = "This is a text, inside a label, pointing somewhere."

func DefaultOptions() Options {
	return Options{
		Offset:    geom.Pt(0, 200),
		Text:      DefaultText,
		MinWidth:  150,
		MaxWidth:  300,
		MinHeight: 20,
		Padding:   10,
		ArrowSize: 22,
		LineWidth: 7,
		Clearance: 15,
		Fill:      "#2c91a9",
		TextColor: "#ffffff",
	}
}

// withDefaults fills zero sizes and colors from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&o.MinWidth, d.MinWidth)
	fill(&o.MaxWidth, d.MaxWidth)
	fill(&o.MinHeight, d.MinHeight)
	fill(&o.ArrowSize, d.ArrowSize)
	fill(&o.LineWidth, d.LineWidth)
	fill(&o.Clearance, d.Clearance)
	if o.Fill == "" {
		o.Fill = d.Fill
	}
	if o.TextColor == "" {
		o.TextColor = d.TextColor
	}
	return o
}

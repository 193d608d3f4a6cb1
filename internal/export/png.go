package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"geolabel/internal/canvas"
)

// NewFace returns Go Regular at size pixels.
func NewFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// FaceMeasure measures text in pixels with face.
func FaceMeasure(face font.Face) canvas.MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// LineHeight is the distance between baselines for face, in pixels.
func LineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height.Ceil())
}

// PNG rasterizes the scene. Shapes go through the SVG renderer; text is drawn
// afterwards with face since the rasterizer has no text support.
func PNG(w io.Writer, s Scene, face font.Face) error {
	if s.Width <= 0 || s.Height <= 0 {
		return errNoSize
	}
	s = s.withDefaults()

	var buf bytes.Buffer
	writeSVG(&buf, s, false)
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(s.Width), float64(s.Height))

	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	scanner := rasterx.NewScannerGV(s.Width, s.Height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(s.Width, s.Height, scanner), 1.0)

	if face != nil {
		for _, sh := range s.Shapes {
			drawText(img, sh, face)
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func drawText(img *image.RGBA, sh canvas.Shape, face font.Face) {
	switch v := sh.(type) {
	case *canvas.Group:
		if v.Hidden {
			return
		}
		for _, c := range v.Children {
			drawText(img, c, face)
		}
	case *canvas.Text:
		if v.Hidden {
			return
		}
		d := &font.Drawer{Dst: img, Src: image.NewUniform(hexColor(v.Fill)), Face: face}
		for i, ln := range v.Lines {
			d.Dot = fixed.Point26_6{
				X: fixed.Int26_6(v.Pos.X * 64),
				Y: fixed.Int26_6(baseline(v, i) * 64),
			}
			d.DrawString(ln)
		}
	}
}

func hexColor(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.Black
	}
	return c
}

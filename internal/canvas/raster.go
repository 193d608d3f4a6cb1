package canvas

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"geolabel/internal/geom"
)

// Each terminal cell holds a 2x4 braille micro-pixel grid.
const (
	CellWidth  = 2
	CellHeight = 4
)

type cell struct {
	mask uint8 // braille dots
	r    rune  // text overrides dots when non-zero
	cont bool  // right half of a wide rune
	fg   string
	bg   string
}

// Raster is a terminal-cell framebuffer addressed in micro-pixels.
type Raster struct {
	w, h  int // in cells
	cells [][]cell
}

func NewRaster(cols, rows int) *Raster {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &Raster{w: cols, h: rows, cells: cells}
}

func (b *Raster) Cols() int { return b.w }
func (b *Raster) Rows() int { return b.h }

// PixelSize is the raster size in micro-pixels.
func (b *Raster) PixelSize() (w, h float64) {
	return float64(b.w * CellWidth), float64(b.h * CellHeight)
}

func (b *Raster) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return nil
	}
	return &b.cells[cy][cx]
}

// SetPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *Raster) SetPixel(mx, my int, fg string) {
	if mx < 0 || my < 0 {
		return
	}
	c := b.at(mx/CellWidth, my/CellHeight)
	if c == nil || c.r != 0 || c.cont {
		return
	}
	rx, ry := mx%CellWidth, my%CellHeight
	var bit uint8
	if rx == 0 {
		bit = [4]uint8{0x01, 0x02, 0x04, 0x40}[ry]
	} else {
		bit = [4]uint8{0x08, 0x10, 0x20, 0x80}[ry]
	}
	c.mask |= bit
	if fg != "" {
		c.fg = fg
	}
}

// DrawLine draws a line on the microgrid using Bresenham
func (b *Raster) DrawLine(x0, y0, x1, y1 int, fg string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.SetPixel(x0, y0, fg)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillPolygon fills a closed ring using the even-odd rule per micro scanline,
// then strokes its edges so thin slivers stay visible.
func (b *Raster) FillPolygon(ring [][2]int, fg string) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * CellHeight
	for y := 0; y < hMic; y++ {
		var xs []int
		for i := range ring {
			a, c := ring[i], ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(c[1]-a[1])
				xs = append(xs, int(float64(a[0])+t*float64(c[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1]; x++ {
				b.SetPixel(x, y, fg)
			}
		}
	}
	for i := range ring {
		a, c := ring[i], ring[(i+1)%len(ring)]
		b.DrawLine(a[0], a[1], c[0], c[1], fg)
	}
}

// FillRect paints the background of every cell whose center lies inside r
// and clears whatever was drawn there.
func (b *Raster) FillRect(r geom.Rect, bg string) {
	c0 := int(math.Floor(r.X / CellWidth))
	c1 := int(math.Ceil((r.X + r.W) / CellWidth))
	r0 := int(math.Floor(r.Y / CellHeight))
	r1 := int(math.Ceil((r.Y + r.H) / CellHeight))
	for cy := r0; cy <= r1; cy++ {
		for cx := c0; cx <= c1; cx++ {
			center := geom.Pt((float64(cx)+0.5)*CellWidth, (float64(cy)+0.5)*CellHeight)
			if c := b.at(cx, cy); c != nil && r.Contains(center) {
				*c = cell{bg: bg}
			}
		}
	}
}

// PutText writes s starting at the cell containing micro-pixel (x, y). The
// cell backgrounds are kept so text sits on top of filled boxes.
func (b *Raster) PutText(x, y float64, s, fg string) {
	cx := int(math.Floor(x / CellWidth))
	cy := int(math.Floor(y / CellHeight))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c := b.at(cx, cy); c != nil {
			c.mask, c.r, c.cont, c.fg = 0, r, false, fg
			if w == 2 {
				if n := b.at(cx+1, cy); n != nil {
					n.mask, n.r, n.cont, n.bg = 0, 0, true, c.bg
				} else {
					c.r = ' '
				}
			}
		}
		cx += w
	}
}

func (c cell) glyph() rune {
	switch {
	case c.r != 0:
		return c.r
	case c.mask != 0:
		return rune(0x2800 + int(c.mask))
	}
	return ' '
}

// Plain returns the raster rows without color.
func (b *Raster) Plain() []string {
	out := make([]string, b.h)
	for y, row := range b.cells {
		var sb strings.Builder
		for _, c := range row {
			if !c.cont {
				sb.WriteRune(c.glyph())
			}
		}
		out[y] = sb.String()
	}
	return out
}

// Lines returns the raster rows, styling runs of equal colors with lipgloss.
func (b *Raster) Lines() []string {
	out := make([]string, b.h)
	for y, row := range b.cells {
		var sb, run strings.Builder
		var fg, bg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if fg == "" && bg == "" {
				sb.WriteString(run.String())
			} else {
				st := lipgloss.NewStyle()
				if fg != "" {
					st = st.Foreground(lipgloss.Color(fg))
				}
				if bg != "" {
					st = st.Background(lipgloss.Color(bg))
				}
				sb.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.cont {
				continue
			}
			cfg := c.fg
			if c.glyph() == ' ' {
				cfg = ""
			}
			if cfg != fg || c.bg != bg {
				flush()
				fg, bg = cfg, c.bg
			}
			run.WriteRune(c.glyph())
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package render rasterises an orrery snapshot into a terminal cell grid.
package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layer orders what may overwrite what. A cell only accepts a glyph from a
// layer at or above the one already there.
type Layer int

const (
	LayerEmpty Layer = iota
	LayerStar
	LayerAxis
	LayerOrbit
	LayerBody
	LayerLabel
	LayerOverlay
)

// Cell is one terminal character with its colour.
type Cell struct {
	Ch    rune
	Color string // "#rrggbb", empty for the default foreground
	Layer Layer
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	w, h  int
	cells []Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{w: w, h: h, cells: make([]Cell, w*h)}
	for i := range c.cells {
		c.cells[i].Ch = ' '
	}
	return c
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.w }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.h }

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

// At returns the cell at x, y. Out of range reads return a blank cell.
func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Ch: ' '}
	}
	return c.cells[y*c.w+x]
}

// Set writes a glyph if the layer allows it.
func (c *Canvas) Set(x, y int, ch rune, color string, layer Layer) {
	if !c.inside(x, y) {
		return
	}
	cell := &c.cells[y*c.w+x]
	if layer < cell.Layer {
		return
	}
	*cell = Cell{Ch: ch, Color: color, Layer: layer}
}

// Text writes s left to right starting at x, y.
func (c *Canvas) Text(x, y int, s string, color string, layer Layer) {
	for _, r := range s {
		c.Set(x, y, r, color, layer)
		x++
	}
}

// Line rasterises a segment between two sub-cell positions. The segment is
// clipped to the canvas first so far off-screen endpoints cost nothing.
func (c *Canvas) Line(x0, y0, x1, y1 float64, color string, layer Layer) {
	if c.w == 0 || c.h == 0 {
		return
	}
	var ok bool
	x0, y0, x1, y1, ok = clipLine(x0, y0, x1, y1, 0, 0, float64(c.w-1), float64(c.h-1))
	if !ok {
		return
	}

	glyph := slopeGlyph(x1-x0, y1-y0)

	// Bresenham
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(ix0, iy0, glyph, color, layer)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// slopeGlyph picks a line character for a screen-space direction. Rows are
// about twice as tall as columns are wide.
func slopeGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)*2
	switch {
	case ax == 0 && ay == 0:
		return '·'
	case ay < ax*0.4:
		return '-'
	case ax < ay*0.4:
		return '|'
	case (dx > 0) == (dy > 0): // screen y grows downward
		return '\\'
	default:
		return '/'
	}
}

// clipLine clips a segment to the rectangle [xmin,xmax]×[ymin,ymax]
// (Liang–Barsky). ok is false when nothing remains.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.w + 1) * c.h)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.cells[y*c.w+x].Ch)
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render returns the canvas with colours applied. Runs of cells sharing a
// colour are styled together to keep the escape overhead down.
func (c *Canvas) Render() string {
	styles := make(map[string]lipgloss.Style)
	style := func(color string) lipgloss.Style {
		s, ok := styles[color]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = s
		}
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(style(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cell := c.cells[y*c.w+x]
			color := cell.Color
			if cell.Ch == ' ' {
				color = runColor // blanks join whatever run is open
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(cell.Ch)
		}
		flush()
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

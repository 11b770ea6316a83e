package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/scene"
)

// glyph is one terminal cell. ch is 0 on the right half of a wide rune.
type glyph struct {
	ch   rune
	wide bool
	fg   colorful.Color
	bg   colorful.Color
	bold bool
}

// canvas is a grid of terminal cells a stage is painted into. Fills are
// composited; strokes are not drawn.
type canvas struct {
	w, h  int
	fg    colorful.Color
	cells []glyph
}

func newCanvas(w, h int, bg, fg colorful.Color) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, fg: fg, cells: make([]glyph, w*h)}
	for i := range c.cells {
		c.cells[i] = glyph{ch: ' ', fg: fg, bg: bg}
	}
	return c
}

// paintStage draws both layers of r, back to front, skipping hidden nodes.
func paintStage(r scene.Renderer, bg, fg colorful.Color) *canvas {
	w, h := r.Size()
	c := newCanvas(int(math.Round(w)), int(math.Round(h)), bg, fg)
	for _, l := range []scene.Layer{scene.Static, scene.Feature} {
		for _, n := range r.Nodes(l) {
			if !n.Hidden {
				c.paint(n)
			}
		}
	}
	return c
}

// RenderStage paints r with the background and text colours of p and
// returns one styled line per row.
func RenderStage(r scene.Renderer, p calendar.Palette) string {
	bg, fg := paletteColors(p)
	return paintStage(r, bg, fg).String()
}

func paletteColors(p calendar.Palette) (bg, fg colorful.Color) {
	return colorOr(p.Background, colorful.Color{R: 1, G: 1, B: 1}), colorOr(p.DayText, colorful.Color{})
}

func colorOr(s string, fallback colorful.Color) colorful.Color {
	c, ok := scene.Flatten(s, 1, fallback)
	if !ok {
		return fallback
	}
	return c
}

// span converts a float extent to a clipped half-open cell range.
func span(at, size float64, limit int) (int, int) {
	a := int(math.Round(at))
	b := int(math.Round(at + size))
	return max(a, 0), min(b, limit)
}

func (c *canvas) at(x, y int) *glyph {
	return &c.cells[y*c.w+x]
}

// paint fills the node rectangle and writes its label. A labelled node
// hides whatever text was under its rectangle.
func (c *canvas) paint(n *scene.Node) {
	x0, x1 := span(n.Rect.X, n.Rect.W, c.w)
	y0, y1 := span(n.Rect.Y, n.Rect.H, c.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g := c.at(x, y)
			if n.Fill != "" {
				g.bg, _ = scene.Flatten(n.Fill, n.Opacity, g.bg)
			}
			if n.Text != "" {
				c.clear(x, y)
			}
		}
	}
	if n.Text != "" {
		c.text(n, x1)
	}
}

// clear blanks one cell, also blanking the other half of a wide rune.
func (c *canvas) clear(x, y int) {
	g := c.at(x, y)
	switch {
	case g.ch == 0 && x > 0:
		prev := c.at(x-1, y)
		prev.ch, prev.wide = ' ', false
	case g.wide && x+1 < c.w:
		c.at(x+1, y).ch = ' '
	}
	g.ch, g.wide, g.bold = ' ', false, false
}

func (c *canvas) text(n *scene.Node, limit int) {
	y := int(math.Round(n.TextAt.Y))
	if y < 0 || y >= c.h {
		return
	}
	x := int(math.Round(n.TextAt.X))
	for _, r := range n.Text {
		rw := ansi.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		if x+rw > limit {
			return
		}
		if x < 0 {
			x += rw
			continue
		}
		for i := range rw {
			c.clear(x+i, y)
		}
		g := c.at(x, y)
		fg, ok := scene.Flatten(n.TextColor, n.Opacity, g.bg)
		if !ok {
			fg = c.fg
		}
		g.ch, g.wide, g.fg, g.bold = r, rw == 2, fg, n.Bold
		if rw == 2 {
			next := c.at(x+1, y)
			next.ch, next.fg, next.bg, next.bold = 0, fg, g.bg, n.Bold
		}
		x += rw
	}
}

type glyphStyle struct {
	fg, bg string
	bold   bool
}

// String renders the canvas as styled lines, one lipgloss run per stretch
// of identically styled cells.
func (c *canvas) String() string {
	styles := map[glyphStyle]lipgloss.Style{}
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		for i := 0; i < len(row); {
			key := styleKey(row[i])
			var run strings.Builder
			j := i
			for ; j < len(row) && (row[j].ch == 0 || styleKey(row[j]) == key); j++ {
				if row[j].ch != 0 {
					run.WriteRune(row[j].ch)
				}
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key.fg)).
					Background(lipgloss.Color(key.bg)).
					Bold(key.bold)
				styles[key] = st
			}
			b.WriteString(st.Render(run.String()))
			i = j
		}
	}
	return b.String()
}

func styleKey(g glyph) glyphStyle {
	return glyphStyle{fg: g.fg.Hex(), bg: g.bg.Hex(), bold: g.bold}
}

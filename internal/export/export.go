// Package export draws a scene into a PNG image.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/javiermolinar/taskcal/internal/scene"
)

// ErrInvalidRatio is returned for a non-positive pixel ratio.
var ErrInvalidRatio = errors.New("pixel ratio must be positive")

// DefaultPixelRatio doubles the stage size.
const DefaultPixelRatio = 2

// Options control the exported image.
type Options struct {
	// PixelRatio scales the stage. Zero means DefaultPixelRatio.
	PixelRatio float64
	// Background fills the image before any node. Empty means white.
	Background string
}

// cornerRadius rounds the corners of bars and chips.
const cornerRadius = 4

var face = basicfont.Face7x13

// Render draws every visible node of r, static layer first, and scales
// the result by the pixel ratio.
func Render(r scene.Renderer, opts Options) (*image.RGBA, error) {
	ratio := opts.PixelRatio
	if ratio == 0 {
		ratio = DefaultPixelRatio
	}
	if ratio < 0 || math.IsNaN(ratio) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	w, h := r.Size()
	base := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h))))
	bg := opts.Background
	if bg == "" {
		bg = "#ffffff"
	}
	if c, ok := nrgba(bg, 1); ok {
		draw.Draw(base, base.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}

	for _, l := range []scene.Layer{scene.Static, scene.Feature} {
		for _, n := range r.Nodes(l) {
			if !n.Hidden {
				drawNode(base, n)
			}
		}
	}

	if ratio == 1 {
		return base, nil
	}
	b := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, int(math.Round(float64(b.Dx())*ratio)), int(math.Round(float64(b.Dy())*ratio))))
	draw.CatmullRom.Scale(out, out.Bounds(), base, b, draw.Src, nil)
	return out, nil
}

// PNG encodes the rendered scene to w.
func PNG(w io.Writer, r scene.Renderer, opts Options) error {
	img, err := Render(r, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WriteFile renders the scene into a PNG file at path.
func WriteFile(path string, r scene.Renderer, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	if err := PNG(f, r, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}
	return nil
}

func drawNode(dst *image.RGBA, n *scene.Node) {
	rect := image.Rect(
		int(math.Round(n.Rect.X)),
		int(math.Round(n.Rect.Y)),
		int(math.Round(n.Rect.Right())),
		int(math.Round(n.Rect.Bottom())),
	)

	if c, ok := nrgba(n.Fill, n.Opacity); ok && !rect.Empty() {
		src := image.NewUniform(c)
		if n.Round {
			draw.DrawMask(dst, rect, src, image.Point{}, roundedMask{rect, cornerRadius}, rect.Min, draw.Over)
		} else {
			draw.Draw(dst, rect, src, image.Point{}, draw.Over)
		}
	}
	if c, ok := nrgba(n.Stroke, n.Opacity); ok && !rect.Empty() {
		strokeRect(dst, rect, image.NewUniform(c))
	}
	if n.Text != "" {
		drawText(dst, n)
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, src image.Image) {
	edges := []image.Rectangle{
		{r.Min, image.Pt(r.Max.X, r.Min.Y+1)},
		{image.Pt(r.Min.X, r.Max.Y-1), r.Max},
		{r.Min, image.Pt(r.Min.X+1, r.Max.Y)},
		{image.Pt(r.Max.X-1, r.Min.Y), r.Max},
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}

func drawText(dst *image.RGBA, n *scene.Node) {
	c, ok := nrgba(n.TextColor, n.Opacity)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	x := int(math.Round(n.TextAt.X))
	y := int(math.Round(n.TextAt.Y)) + face.Ascent
	d.Dot = fixed.P(x, y)
	d.DrawString(n.Text)
	if n.Bold {
		d.Dot = fixed.P(x+1, y)
		d.DrawString(n.Text)
	}
}

// nrgba parses a scene colour and applies opacity. It reports false for
// empty, invalid or fully transparent colours.
func nrgba(s string, opacity float64) (color.NRGBA, bool) {
	if s == "" {
		return color.NRGBA{}, false
	}
	c, a, err := scene.ParseColor(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	alpha := a * opacity
	if alpha <= 0 {
		return color.NRGBA{}, false
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(min(alpha, 1) * 255))}, true
}

// roundedMask is an opaque rectangle with cut corners.
type roundedMask struct {
	r   image.Rectangle
	rad int
}

func (m roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m roundedMask) Bounds() image.Rectangle { return m.r }

func (m roundedMask) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.r) {
		return color.Transparent
	}
	rad := min(m.rad, m.r.Dx()/2, m.r.Dy()/2)
	cx, cy := x, y
	switch {
	case x < m.r.Min.X+rad:
		cx = m.r.Min.X + rad
	case x >= m.r.Max.X-rad:
		cx = m.r.Max.X - rad - 1
	}
	switch {
	case y < m.r.Min.Y+rad:
		cy = m.r.Min.Y + rad
	case y >= m.r.Max.Y-rad:
		cy = m.r.Max.Y - rad - 1
	}
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > rad*rad {
		return color.Transparent
	}
	return color.Opaque
}

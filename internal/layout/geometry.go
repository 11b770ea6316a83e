package layout

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/task"
)

// Config errors.
var (
	ErrNoLanes         = errors.New("max visible lanes must be at least 1")
	ErrInvalidGeometry = errors.New("lane and bar sizes must be positive")
)

// Config holds the lane budget and bar geometry inside a day cell. Offsets
// are relative to the top-left corner of the cell.
type Config struct {
	MaxVisibleLanes int
	LaneTop         float64
	LaneHeight      float64
	BarHeight       float64
	// Inset shrinks a bar on the side where the task really starts or ends.
	Inset float64
	// LabelPad is the text offset from the bar's left edge.
	LabelPad float64

	ChipHeight float64
	// ChipBottom is the distance from the cell bottom to the chip top.
	ChipBottom float64
	ChipPad    float64
}

// DefaultConfig returns the pixel layout used by the canvas renderer.
func DefaultConfig() Config {
	return Config{
		MaxVisibleLanes: 3,
		LaneTop:         35,
		LaneHeight:      25,
		BarHeight:       20,
		Inset:           10,
		LabelPad:        5,
		ChipHeight:      18,
		ChipBottom:      22,
		ChipPad:         10,
	}
}

// Validate checks that the config can produce a layout.
func (c Config) Validate() error {
	if c.MaxVisibleLanes < 1 {
		return ErrNoLanes
	}
	if c.LaneHeight <= 0 || c.BarHeight <= 0 {
		return ErrInvalidGeometry
	}
	return nil
}

// LaneOffset returns the y offset of a lane from the cell top.
func (c Config) LaneOffset(lane int) float64 {
	return c.LaneTop + float64(lane)*c.LaneHeight
}

// BarRect returns the bar rectangle for a placed segment whose start date
// is drawn in cell. The bar spans the segment's own days; a start or end
// cap shrinks it by Inset on that side.
func (c Config) BarRect(cell geom.Rect, p Placement) (geom.Rect, error) {
	span, err := p.Segment.Span()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("bar for %q: %w", p.Segment.ID, err)
	}

	r := geom.Rect{
		X: cell.X,
		Y: cell.Y + c.LaneOffset(p.Lane),
		W: float64(span) * cell.W,
		H: c.BarHeight,
	}
	if p.Segment.StartSign {
		r.X += c.Inset
		r.W -= c.Inset
	}
	if p.Segment.EndSign {
		r.W -= c.Inset
	}
	return r, nil
}

// LabelOrigin returns where a bar's text starts.
func (c Config) LabelOrigin(cell geom.Rect, p Placement) geom.Point {
	x := cell.X + c.LabelPad
	if p.Segment.StartSign {
		x += c.Inset
	}
	return geom.Point{X: x, Y: cell.Y + c.LaneOffset(p.Lane)}
}

// ChipRect returns the overflow chip rectangle for a cell. width is the
// rendered label width.
func (c Config) ChipRect(cell geom.Rect, width float64) geom.Rect {
	return geom.Rect{
		X: cell.X + c.ChipPad,
		Y: cell.Y + cell.H - c.ChipBottom,
		W: width + c.ChipPad,
		H: c.ChipHeight,
	}
}

// Label returns the text drawn on a bar.
func Label(r task.Range) string {
	if r.Description == "" {
		return "Untitled"
	}
	return r.Description
}

// ChipLabel returns the overflow chip text for n hidden segments.
func ChipLabel(n int) string {
	return fmt.Sprintf("+%d more", n)
}

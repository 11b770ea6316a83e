package calendar

import (
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/layout"
)

// Metrics is the fixed geometry of the month view. The pixel profile is
// for image output; the terminal profile measures in character cells.
type Metrics struct {
	MinWidth  float64
	MinHeight float64
	// MarginX is the horizontal margin on each side of the grid.
	MarginX       float64
	TitleHeight   float64
	WeekdayHeight float64
	// CharWidth is the width of one text column.
	CharWidth  float64
	LineHeight float64

	DayLabel geom.Point
	// LunarPad is the gap between the lunar label and the cell's right edge.
	LunarPad float64
	// TodayRadius pads the highlight drawn behind today's day label.
	TodayRadius float64
	// PlusSize is the side of the add-task hit area in the hover cell.
	PlusSize  float64
	PlusInset float64

	Layout layout.Config
}

// PixelMetrics matches the canvas layout: a 780x730 minimum stage, a 40px
// title row, a 30px weekday row and three 25px lanes from y=35.
func PixelMetrics() Metrics {
	return Metrics{
		MinWidth:      780,
		MinHeight:     730,
		MarginX:       20,
		TitleHeight:   40,
		WeekdayHeight: 30,
		CharWidth:     7,
		LineHeight:    13,
		DayLabel:      geom.Point{X: 12, Y: 10},
		LunarPad:      16,
		TodayRadius:   6,
		PlusSize:      20,
		PlusInset:     10,
		Layout:        layout.DefaultConfig(),
	}
}

// TerminalMetrics lays the month out in character cells: one row for the
// day label, one per lane and one for the overflow chip.
func TerminalMetrics() Metrics {
	return Metrics{
		MinWidth:      7 * 8,
		MinHeight:     2 + 5*5,
		MarginX:       0,
		TitleHeight:   1,
		WeekdayHeight: 1,
		CharWidth:     1,
		LineHeight:    1,
		DayLabel:      geom.Point{X: 1, Y: 0},
		LunarPad:      1,
		TodayRadius:   0,
		PlusSize:      1,
		PlusInset:     1,
		Layout: layout.Config{
			MaxVisibleLanes: 3,
			LaneTop:         1,
			LaneHeight:      1,
			BarHeight:       1,
			Inset:           1,
			LabelPad:        0,
			ChipHeight:      1,
			ChipBottom:      1,
			ChipPad:         1,
		},
	}
}

// GridTop returns the y coordinate of the first week row.
func (m Metrics) GridTop() float64 {
	return m.TitleHeight + m.WeekdayHeight
}

// TextTop returns the y coordinate that centres one line of text in a box.
func (m Metrics) TextTop(top, height float64) float64 {
	return top + max(height-m.LineHeight, 0)/2
}

// StageSize clamps a requested size to the minimum.
func (m Metrics) StageSize(w, h float64) (float64, float64) {
	return max(w, m.MinWidth), max(h, m.MinHeight)
}

// CellSize returns the day cell size for a stage and row count.
func (m Metrics) CellSize(w, h float64, rows int) (float64, float64) {
	if rows < 1 {
		rows = 1
	}
	return (w - 2*m.MarginX) / 7, (h - m.GridTop()) / float64(rows)
}

// Palette holds the colours the calendar draws with.
type Palette struct {
	Background    string  `toml:"background"`
	Title         string  `toml:"title"`
	Weekday       string  `toml:"weekday"`
	CellFill      string  `toml:"cell_fill"`
	CellStroke    string  `toml:"cell_stroke"`
	OtherStroke   string  `toml:"other_stroke"`
	DayText       string  `toml:"day_text"`
	OtherDayText  string  `toml:"other_day_text"`
	TodayFill     string  `toml:"today_fill"`
	TodayText     string  `toml:"today_text"`
	LunarText     string  `toml:"lunar_text"`
	BarText       string  `toml:"bar_text"`
	ChipText      string  `toml:"chip_text"`
	ChipFill      string  `toml:"chip_fill"`
	HoverFill     string  `toml:"hover_fill"`
	HoverDragFill string  `toml:"hover_drag_fill"`
	PlusStroke    string  `toml:"plus_stroke"`
	DragSourceDim float64 `toml:"drag_source_opacity"`
}

// DefaultPalette returns the light palette.
func DefaultPalette() Palette {
	return Palette{
		Background:    "#ffffff",
		Title:         "#000000",
		Weekday:       "rgba(0,0,0,0.9)",
		CellFill:      "#ffffff",
		CellStroke:    "#eeeeee",
		OtherStroke:   "#e1e2e3",
		DayText:       "#000000",
		OtherDayText:  "gray",
		TodayFill:     "#1f6df6",
		TodayText:     "#ffffff",
		LunarText:     "rgba(0,0,0,0.4)",
		BarText:       "rgba(0,0,0,0.8)",
		ChipText:      "rgba(0,0,0,0.4)",
		ChipFill:      "transparent",
		HoverFill:     "rgba(0,0,0,0.053)",
		HoverDragFill: "rgba(237,244,255,0.8)",
		PlusStroke:    "rgba(0,0,255,0.3)",
		DragSourceDim: 0.33,
	}
}

package calendar

import (
	"time"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/geom"
)

// Cell is one day of the month grid.
type Cell struct {
	Key  string
	Date time.Time
	Row  int
	Col  int
	Rect geom.Rect
	// InMonth is false for the leading and trailing days of the
	// neighbouring months.
	InMonth bool
	Today   bool
}

// Grid is a Monday-first month grid, including the days of the previous
// and next months that complete the first and last weeks.
type Grid struct {
	Year  int
	Month int
	Rows  int
	Cells []Cell

	index map[string]int
}

// WeekRows returns the number of Monday-first weeks a month touches.
func WeekRows(year, month int) (int, error) {
	first, _, days, err := dateutil.FirstAndLastOfMonth(year, month)
	if err != nil {
		return 0, err
	}
	return (dateutil.MondayIndex(first) + days + 6) / 7, nil
}

// NewGrid lays out the month in cells of size cw x ch starting at origin.
func NewGrid(year, month int, today string, origin geom.Point, cw, ch float64) (*Grid, error) {
	first, _, days, err := dateutil.FirstAndLastOfMonth(year, month)
	if err != nil {
		return nil, err
	}
	offset := dateutil.MondayIndex(first)
	rows := (offset + days + 6) / 7
	start := first.AddDate(0, 0, -offset)

	g := &Grid{
		Year:  year,
		Month: month,
		Rows:  rows,
		Cells: make([]Cell, 0, rows*7),
		index: make(map[string]int, rows*7),
	}
	for i := range rows * 7 {
		d := start.AddDate(0, 0, i)
		key := d.Format(dateutil.KeyLayout)
		row, col := i/7, i%7
		g.index[key] = len(g.Cells)
		g.Cells = append(g.Cells, Cell{
			Key:     key,
			Date:    d,
			Row:     row,
			Col:     col,
			Rect:    geom.Rect{X: origin.X + float64(col)*cw, Y: origin.Y + float64(row)*ch, W: cw, H: ch},
			InMonth: int(d.Month()) == month,
			Today:   key == today,
		})
	}
	return g, nil
}

// Cell returns the cell for a date key.
func (g *Grid) Cell(key string) (Cell, bool) {
	i, ok := g.index[key]
	if !ok {
		return Cell{}, false
	}
	return g.Cells[i], true
}

// CellAt returns the cell containing p.
func (g *Grid) CellAt(p geom.Point) (Cell, bool) {
	hit, ok := geom.Find(g.Cells, cellRect, p)
	return hit.Shape, ok
}

// First returns the key of the first visible day.
func (g *Grid) First() string { return g.Cells[0].Key }

// Last returns the key of the last visible day.
func (g *Grid) Last() string { return g.Cells[len(g.Cells)-1].Key }

func cellRect(c Cell) geom.Rect { return c.Rect }

package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/javiermolinar/taskcal/internal/debuglog"
	"github.com/javiermolinar/taskcal/internal/drag"
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/layout"
	"github.com/javiermolinar/taskcal/internal/lunar"
	"github.com/javiermolinar/taskcal/internal/scene"
	"github.com/javiermolinar/taskcal/internal/task"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// draw rebuilds the grid for the current view and redraws both layers.
func (c *Controller) draw() error {
	w, h := c.renderer.Size()
	rows, err := WeekRows(c.view.Year, c.view.Month)
	if err != nil {
		return err
	}
	cw, ch := c.metrics.CellSize(w, h, rows)
	origin := geom.Point{X: c.metrics.MarginX, Y: c.metrics.GridTop()}
	grid, err := NewGrid(c.view.Year, c.view.Month, c.view.Today, origin, cw, ch)
	if err != nil {
		return err
	}
	c.grid = grid

	c.drawCalendar()
	c.renderer.Clear(scene.Feature)
	c.ghost = nil
	c.drawHover()
	c.drawTasks()
	return nil
}

// Title returns the heading of the visible month.
func (c *Controller) Title() string {
	return fmt.Sprintf("%s %d", time.Month(c.view.Month), c.view.Year)
}

func (c *Controller) drawCalendar() {
	r, m, p := c.renderer, c.metrics, c.palette
	w, _ := r.Size()
	r.Clear(scene.Static)

	title := scene.NewNode(scene.NameTitle, "title", geom.Rect{W: w, H: m.TitleHeight})
	title.Fill = p.Background
	title.Text = c.Title()
	title.TextAt = geom.Point{X: m.MarginX + m.DayLabel.X, Y: m.TextTop(0, m.TitleHeight)}
	title.TextColor = p.Title
	title.Bold = true
	r.Add(scene.Static, title)

	cw := c.grid.Cells[0].Rect.W
	for i, name := range weekdays {
		rect := geom.Rect{X: m.MarginX + float64(i)*cw, Y: m.TitleHeight, W: cw, H: m.WeekdayHeight}
		n := scene.NewNode(scene.NameWeekday, name, rect)
		n.Fill = p.Background
		n.Text = name
		n.TextAt = geom.Point{X: rect.X + max(cw-r.MeasureText(name), 0)/2, Y: m.TextTop(rect.Y, rect.H)}
		n.TextColor = p.Weekday
		r.Add(scene.Static, n)
	}

	failed := 0
	for _, cell := range c.grid.Cells {
		label := dayLabel(cell)
		labelAt := cell.Rect.Origin().Add(m.DayLabel)

		n := scene.NewNode(scene.NameDateCell, cell.Key, cell.Rect)
		n.Key = cell.Key
		n.Fill = p.CellFill
		n.Stroke = p.CellStroke
		n.TextColor = p.DayText
		n.Bold = cell.InMonth
		if !cell.InMonth {
			n.Stroke = p.OtherStroke
			n.TextColor = p.OtherDayText
		}
		if !cell.Today {
			n.Text = label
			n.TextAt = labelAt
		}
		r.Add(scene.Static, n)

		if cell.Today {
			rad := m.TodayRadius
			today := scene.NewNode(scene.NameToday, cell.Key, geom.Rect{
				X: labelAt.X - rad,
				Y: labelAt.Y - rad,
				W: r.MeasureText(label) + 2*rad,
				H: m.LineHeight + 2*rad,
			})
			today.Key = cell.Key
			today.Round = true
			today.Fill = p.TodayFill
			today.Text = label
			today.TextAt = labelAt
			today.TextColor = p.TodayText
			today.Bold = true
			r.Add(scene.Static, today)
		}

		l, err := c.lunarLabel(cell.Date)
		if err != nil {
			failed++
			continue
		}
		text := l.Annotation()
		tw := r.MeasureText(text)
		x := cell.Rect.Right() - m.LunarPad - tw
		if x < labelAt.X+r.MeasureText(label)+m.CharWidth {
			continue
		}
		ln := scene.NewNode(scene.NameLunar, cell.Key, geom.Rect{X: x, Y: labelAt.Y, W: tw, H: m.LineHeight})
		ln.Key = cell.Key
		ln.Text = text
		ln.TextAt = ln.Rect.Origin()
		ln.TextColor = p.LunarText
		r.Add(scene.Static, ln)
	}
	if _, none := c.lunar.(lunar.None); failed > 0 && !none {
		c.log.Log("LUNAR_FAILED", map[string]any{"cells": failed})
	}
}

// lunarLabel asks the provider for a label, treating a panic as a failure.
func (c *Controller) lunarLabel(date time.Time) (l lunar.Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			l, err = lunar.Label{}, fmt.Errorf("%w: %v", lunar.ErrUnavailable, r)
		}
	}()
	return c.lunar.Label(date)
}

// dayLabel is the day number, or the month name on the first of the
// visible month.
func dayLabel(cell Cell) string {
	if cell.InMonth && cell.Date.Day() == 1 {
		return cell.Date.Month().String()[:3]
	}
	return strconv.Itoa(cell.Date.Day())
}

func (c *Controller) drawHover() {
	c.hover = scene.NewNode(scene.NameHover, "hover", geom.Rect{})
	c.hover.Hidden = true
	c.hover.Fill = c.palette.HoverFill
	c.hover.Opacity = 0.6
	c.renderer.Add(scene.Feature, c.hover)
	c.hoverKey = ""

	c.plus = nil
	if c.mode == ModeRead || !c.isAddTaskBtn {
		return
	}
	c.plus = scene.NewNode(scene.NamePlus, "plus", geom.Rect{})
	c.plus.Hidden = true
	c.plus.Text = "+"
	c.plus.TextColor = c.palette.PlusStroke
	c.plus.Bold = true
	c.renderer.Add(scene.Feature, c.plus)
}

// segmentCell returns the cell a segment is anchored to.
func (c *Controller) segmentCell(s task.Range) (Cell, error) {
	cell, ok := c.grid.Cell(s.StartTime)
	if !ok {
		return Cell{}, fmt.Errorf("%w: segment %s starts %s", ErrLayoutUnresolved, s.ID, s.StartTime)
	}
	return cell, nil
}

// drawTasks splits the tasks visible in the grid, assigns lanes and draws
// bars and overflow chips. It never touches the task collection.
func (c *Controller) drawTasks() {
	r, m, p := c.renderer, c.metrics, c.palette
	r.RemoveNamed(scene.Feature, scene.NameTaskBar)
	r.RemoveNamed(scene.Feature, scene.NameChip)

	first, last := c.grid.First(), c.grid.Last()
	var visible []task.Range
	for _, t := range c.tasks.All() {
		if task.IntervalsOverlap(t.StartTime, t.EndTime, first, last) {
			visible = append(visible, t)
		}
	}

	segs, errs := c.splitter.SplitAll(visible)
	for _, err := range errs {
		debuglog.Error(c.log, "split", err)
	}

	anchored := segs[:0]
	unresolved := 0
	for _, s := range segs {
		if _, err := c.segmentCell(s); err != nil {
			unresolved++
			c.log.Log("LAYOUT_UNRESOLVED", map[string]any{
				"segment": s.ID,
				"parent":  s.ParentID,
				"start":   s.StartTime,
			})
			continue
		}
		anchored = append(anchored, s)
	}

	c.laid = layout.Allocate(anchored, m.Layout.MaxVisibleLanes)

	for _, pl := range c.laid.Placed {
		cell, _ := c.segmentCell(pl.Segment)
		rect, err := m.Layout.BarRect(cell.Rect, pl)
		if err != nil {
			debuglog.Error(c.log, "bar geometry", err)
			continue
		}
		seg := pl.Segment
		n := scene.NewNode(scene.NameTaskBar, seg.ID, rect)
		n.Key = seg.StartTime
		n.ParentID = seg.ParentID
		n.Day = seg.Day
		n.Fill = seg.FillOrDefault()
		n.Round = true
		n.Text = layout.Label(seg)
		at := m.Layout.LabelOrigin(cell.Rect, pl)
		n.TextAt = geom.Point{X: at.X, Y: m.TextTop(rect.Y, rect.H)}
		n.TextColor = p.BarText
		r.Add(scene.Feature, n)
	}

	for _, g := range c.laid.Overflow {
		cell, _ := c.grid.Cell(g.Key)
		label := layout.ChipLabel(len(g.Segments))
		rect := m.Layout.ChipRect(cell.Rect, r.MeasureText(label))
		n := scene.NewNode(scene.NameChip, g.Key, rect)
		n.Key = g.Key
		n.Round = true
		n.Fill = p.ChipFill
		n.Text = label
		n.TextAt = geom.Point{X: rect.X + m.Layout.ChipPad/2, Y: m.TextTop(rect.Y, rect.H)}
		n.TextColor = p.ChipText
		r.Add(scene.Feature, n)
	}

	if c.ghost != nil {
		r.MoveToTop(scene.Feature, c.ghost)
	}

	c.log.Log("LAYOUT_PASS", map[string]any{
		"month":      fmt.Sprintf("%04d-%02d", c.view.Year, c.view.Month),
		"tasks":      len(visible),
		"segments":   len(segs),
		"placed":     len(c.laid.Placed),
		"hidden":     c.laid.Hidden(),
		"unresolved": unresolved,
	})
}

func (c *Controller) barNode(segmentID string) *scene.Node {
	for _, n := range c.renderer.Find(scene.Feature, scene.NameTaskBar) {
		if n.ID == segmentID {
			return n
		}
	}
	return nil
}

func (c *Controller) beginDrag(b drag.Bar) {
	if src := c.barNode(b.SegmentID); src != nil {
		c.ghost = src.Clone()
		c.ghost.Name = scene.NameGhost
		src.Opacity = c.palette.DragSourceDim
		c.renderer.Add(scene.Feature, c.ghost)
	}
	if c.hover != nil {
		c.hover.Fill = c.palette.HoverDragFill
		c.renderer.MoveToBottom(scene.Feature, c.hover)
	}
}

func (c *Controller) moveGhost(_ drag.Bar, r geom.Rect) {
	if c.ghost == nil {
		return
	}
	d := r.Origin().Sub(c.ghost.Rect.Origin())
	c.ghost.Rect = r
	c.ghost.TextAt = c.ghost.TextAt.Add(d)
}

func (c *Controller) endDrag(b drag.Bar) {
	if c.ghost != nil {
		c.renderer.Remove(scene.Feature, c.ghost)
		c.ghost = nil
	}
	if src := c.barNode(b.SegmentID); src != nil {
		src.Opacity = 1
	}
	if c.hover != nil {
		c.hover.Fill = c.palette.HoverFill
	}
}

package calendar

import (
	"github.com/javiermolinar/taskcal/internal/debuglog"
	"github.com/javiermolinar/taskcal/internal/drag"
	"github.com/javiermolinar/taskcal/internal/event"
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/scene"
	"github.com/javiermolinar/taskcal/internal/task"
)

// PointerDown handles a button press at p. Only the left button can click
// or drag; any other button aborts a press or drag in progress. Use
// ContextMenu for the right button.
func (c *Controller) PointerDown(p geom.Point, b Button) {
	c.renderer.SetPointer(p)
	c.pressClick, c.pressTarget = nil, nil
	if b != ButtonLeft {
		c.drag.Abort()
		return
	}

	if n := c.clickableAt(p); n != nil {
		c.pressTarget = n
		return
	}

	hit, ok := scene.Hit(c.renderer, scene.Feature, scene.NameTaskBar, p)
	if !ok {
		return
	}
	bar := hit.Shape
	c.pressClick = &event.RangePointer{X: p.X, Y: p.Y, ID: bar.ParentID}
	c.drag.Press(drag.Bar{
		SegmentID: bar.ID,
		ParentID:  bar.ParentID,
		Day:       bar.Day,
		Rect:      bar.Rect,
	}, p)
}

// PointerMove moves the hover highlight and any drag in progress.
func (c *Controller) PointerMove(p geom.Point) {
	c.renderer.SetPointer(p)
	c.updateHover(p)
	c.drag.Move(p)
}

// PointerUp finishes a left-button press. A drag commits or cancels.
// Otherwise the press is a click when it is released over the task, chip
// or add-task button it started on. Other buttons are ignored.
func (c *Controller) PointerUp(p geom.Point, b Button) {
	c.renderer.SetPointer(p)
	if b != ButtonLeft {
		return
	}
	click, target := c.pressClick, c.pressTarget
	c.pressClick, c.pressTarget = nil, nil

	out := c.drag.Release(p, dragResolver{c})
	switch out.Result {
	case drag.Committed:
		c.commit(out)
		return
	case drag.Cancelled:
		return
	}
	if target != nil {
		if c.clickableAt(p) == target {
			c.activate(target)
		}
		return
	}
	if click != nil && c.parentAt(p) == click.ID {
		c.logEmit(event.ClickRange, map[string]any{"id": click.ID})
		c.bus.ClickRange.Emit(*click)
	}
}

func (c *Controller) commit(out drag.Outcome) {
	id := out.Bar.ParentID
	if err := c.tasks.Reschedule(id, out.NewStart, out.NewEnd); err != nil {
		debuglog.Error(c.log, "drag commit", err)
		return
	}
	c.drawTasks()

	u := event.TaskUpdate{ID: id, StartTime: out.NewStart, EndTime: out.NewEnd}
	c.logEmit(event.UpdateTask, map[string]any{"id": id, "start": u.StartTime, "end": u.EndTime})
	c.bus.UpdateTask.Emit(u)
}

// ContextMenu handles a right-button press at p. It emits ContextMenu when
// p is on a task bar and reports whether it did. It never starts a click.
func (c *Controller) ContextMenu(p geom.Point) bool {
	c.renderer.SetPointer(p)
	if c.drag.State() == drag.Dragging {
		return false
	}
	hit, ok := scene.Hit(c.renderer, scene.Feature, scene.NameTaskBar, p)
	if !ok {
		return false
	}
	rp := event.RangePointer{X: p.X, Y: p.Y, ID: hit.Shape.ParentID}
	c.logEmit(event.ContextMenu, map[string]any{"id": rp.ID})
	c.bus.ContextMenu.Emit(rp)
	return true
}

// PointerLeave hides the hover highlight. A drag in progress keeps its
// capture and can still be released.
func (c *Controller) PointerLeave() {
	if c.hover != nil {
		c.hover.Hidden = true
	}
	if c.plus != nil {
		c.plus.Hidden = true
	}
}

// Hover returns the hovered day and whether the highlight is shown.
func (c *Controller) Hover() (string, bool) {
	if c.hover == nil || c.hover.Hidden {
		return c.hoverKey, false
	}
	return c.hoverKey, true
}

// ClickOverflow emits ClickSurpassTip for a day and returns its payload:
// every logical task whose range contains the day.
func (c *Controller) ClickOverflow(key string) []task.Range {
	ranges := c.tasks.ContainingDate(key)
	c.logEmit(event.ClickSurpassTip, map[string]any{"day": key, "tasks": len(ranges)})
	c.bus.ClickSurpassTip.Emit(ranges)
	return ranges
}

// ClickAddTask emits AddTaskRange for the hovered day. It reports false in
// read mode, without the add-task button or with no hovered day.
func (c *Controller) ClickAddTask() bool {
	if c.plus == nil || c.hoverKey == "" {
		return false
	}
	c.logEmit(event.AddTaskRange, map[string]any{"day": c.hoverKey})
	c.bus.AddTaskRange.Emit(c.hoverKey)
	return true
}

func (c *Controller) updateHover(p geom.Point) {
	cell, ok := c.grid.CellAt(p)
	if !ok || c.hover == nil {
		return
	}
	c.hover.Rect = cell.Rect
	c.hover.Hidden = false
	c.hoverKey = cell.Key

	if c.plus == nil {
		return
	}
	m := c.metrics
	c.plus.Rect = geom.Rect{
		X: cell.Rect.Right() - m.PlusInset - m.PlusSize,
		Y: cell.Rect.Y,
		W: m.PlusSize,
		H: m.PlusSize,
	}
	c.plus.TextAt = geom.Point{
		X: c.plus.Rect.X + max(m.PlusSize-c.renderer.MeasureText("+"), 0)/2,
		Y: m.TextTop(c.plus.Rect.Y, m.PlusSize),
	}
	c.plus.Key = cell.Key
	c.plus.Hidden = false
}

// parentAt returns the logical task id of the bar at p, or "".
func (c *Controller) parentAt(p geom.Point) string {
	hit, ok := scene.Hit(c.renderer, scene.Feature, scene.NameTaskBar, p)
	if !ok {
		return ""
	}
	return hit.Shape.ParentID
}

// clickableAt returns the add-task button or overflow chip at p.
func (c *Controller) clickableAt(p geom.Point) *scene.Node {
	if hit, ok := scene.Hit(c.renderer, scene.Feature, scene.NamePlus, p); ok {
		return hit.Shape
	}
	if hit, ok := scene.Hit(c.renderer, scene.Feature, scene.NameChip, p); ok {
		return hit.Shape
	}
	return nil
}

func (c *Controller) activate(n *scene.Node) {
	switch n.Name {
	case scene.NamePlus:
		c.ClickAddTask()
	case scene.NameChip:
		c.ClickOverflow(n.Key)
	}
}

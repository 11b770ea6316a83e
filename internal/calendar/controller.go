// Package calendar renders a month view with task bars and turns pointer
// input into calendar events.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/debuglog"
	"github.com/javiermolinar/taskcal/internal/drag"
	"github.com/javiermolinar/taskcal/internal/event"
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/host"
	"github.com/javiermolinar/taskcal/internal/layout"
	"github.com/javiermolinar/taskcal/internal/lunar"
	"github.com/javiermolinar/taskcal/internal/scene"
	"github.com/javiermolinar/taskcal/internal/task"
)

// Errors.
var (
	ErrInvalidMode = errors.New("mode must be 'read' or 'edit'")
	// ErrLayoutUnresolved means a segment starts on a day that is not visible.
	ErrLayoutUnresolved = errors.New("segment start is not a visible day")
)

// Mode controls whether the calendar can be edited.
type Mode string

// Modes.
const (
	ModeEdit Mode = "edit"
	ModeRead Mode = "read"
)

// ParseMode parses a mode string. Empty means edit.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeEdit:
		return ModeEdit, nil
	case ModeRead:
		return ModeRead, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Options configure a Controller.
type Options struct {
	Mode Mode
	// Width and Height are clamped to the metrics minimum.
	Width  float64
	Height float64
	// InitDate selects the first visible month. Empty means today.
	InitDate     string
	IsAddTaskBtn bool

	// Metrics defaults to PixelMetrics.
	Metrics *Metrics
	// Palette defaults to DefaultPalette.
	Palette *Palette
	// Renderer defaults to a new scene.Stage of the clamped size.
	Renderer scene.Renderer
	// Lunar defaults to no annotation.
	Lunar    lunar.Provider
	Capturer drag.Capturer
	Logger   debuglog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID generates week-segment ids. Defaults to task.NewID.
	NewID func() string
}

// ViewState is the visible month and today's date.
type ViewState struct {
	Year  int
	Month int
	Today string
}

// Button is a pointer button.
type Button int

// Buttons.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Controller owns the task collection and the visible month, draws both
// into a Renderer and emits interaction events.
type Controller struct {
	mode         Mode
	isAddTaskBtn bool
	metrics      Metrics
	palette      Palette
	renderer     scene.Renderer
	lunar        lunar.Provider
	log          debuglog.Logger
	now          func() time.Time
	splitter     task.Splitter

	tasks *task.Collection
	view  ViewState
	grid  *Grid
	laid  layout.Result

	bus  *event.Bus
	drag *drag.Session

	hover    *scene.Node
	plus     *scene.Node
	hoverKey string
	ghost    *scene.Node

	// pressClick is the bar under the last left press, cleared on release.
	pressClick *event.RangePointer
	// pressTarget is the chip or plus node under the last left press.
	pressTarget *scene.Node
}

// New creates a controller and draws the initial month.
func New(opts Options) (*Controller, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	m := PixelMetrics()
	if opts.Metrics != nil {
		m = *opts.Metrics
	}
	if err := m.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout config: %w", err)
	}
	p := DefaultPalette()
	if opts.Palette != nil {
		p = *opts.Palette
	}

	c := &Controller{
		mode:         mode,
		isAddTaskBtn: opts.IsAddTaskBtn,
		metrics:      m,
		palette:      p,
		renderer:     opts.Renderer,
		lunar:        opts.Lunar,
		log:          debuglog.OrNop(opts.Logger),
		now:          opts.Now,
		splitter:     task.Splitter{NewID: opts.NewID},
		tasks:        &task.Collection{},
		bus:          event.NewBus(),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.lunar == nil {
		c.lunar = lunar.None{}
	}
	if c.renderer == nil {
		w, h := m.StageSize(opts.Width, opts.Height)
		c.renderer = scene.NewStage(w, h, scene.WithCharWidth(m.CharWidth))
	}

	c.drag = drag.New(opts.Capturer, drag.Hooks{
		Begin: c.beginDrag,
		Move:  c.moveGhost,
		End:   c.endDrag,
	}, c.log)
	c.drag.SetReadOnly(mode == ModeRead)

	today := dateutil.FormatKey(c.now())
	initial := today
	if opts.InitDate != "" {
		if !dateutil.ValidKey(opts.InitDate) {
			return nil, fmt.Errorf("init date: %w", dateutil.ErrInvalidDateKey)
		}
		initial = opts.InitDate
	}
	t, _ := dateutil.ParseKey(initial)
	c.view = ViewState{Year: t.Year(), Month: int(t.Month()), Today: today}

	if err := c.draw(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewInContainer resolves the container selector on h and uses its box for
// any size not set in opts.
func NewInContainer(h host.Host, container string, opts Options) (*Controller, error) {
	box, err := host.ContainerBox(h, container)
	if err != nil {
		return nil, fmt.Errorf("resolving container: %w", err)
	}
	if opts.Width == 0 {
		opts.Width = box.W
	}
	if opts.Height == 0 {
		opts.Height = box.H
	}
	return New(opts)
}

// Mode returns the interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// View returns the visible month.
func (c *Controller) View() ViewState { return c.view }

// Grid returns the visible month grid.
func (c *Controller) Grid() *Grid { return c.grid }

// Layout returns the result of the last layout pass.
func (c *Controller) Layout() layout.Result { return c.laid }

// Renderer returns the surface the controller draws into.
func (c *Controller) Renderer() scene.Renderer { return c.renderer }

// Palette returns the colours in use.
func (c *Controller) Palette() Palette { return c.palette }

// Metrics returns the geometry in use.
func (c *Controller) Metrics() Metrics { return c.metrics }

// Events returns the event bus.
func (c *Controller) Events() *event.Bus { return c.bus }

// DragState returns the state of the drag session.
func (c *Controller) DragState() drag.State { return c.drag.State() }

// SetTasks replaces the task collection and lays the bars out again.
// Invalid ranges are skipped and reported in the returned error.
func (c *Controller) SetTasks(ranges []task.Range) error {
	err := c.tasks.Replace(ranges)
	c.drawTasks()
	return err
}

// AddTasks appends to the task collection and lays the bars out again.
func (c *Controller) AddTasks(ranges ...task.Range) error {
	err := c.tasks.Append(ranges...)
	c.drawTasks()
	return err
}

// RemoveTask deletes a logical task and lays the bars out again.
func (c *Controller) RemoveTask(id string) error {
	if err := c.tasks.Remove(id); err != nil {
		return err
	}
	c.drawTasks()
	return nil
}

// Snapshot returns a read-only controller showing the same month and
// tasks, drawn with m at the given size. It is used for image export.
func (c *Controller) Snapshot(m Metrics, w, h float64) (*Controller, error) {
	s, err := New(Options{
		Mode:     ModeRead,
		Width:    w,
		Height:   h,
		InitDate: dateutil.DayKey(c.view.Year, c.view.Month, 1),
		Metrics:  &m,
		Palette:  &c.palette,
		Lunar:    c.lunar,
		Logger:   c.log,
		Now:      c.now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetTasks(c.tasks.All()); err != nil {
		return nil, fmt.Errorf("snapshot tasks: %w", err)
	}
	return s, nil
}

// Tasks returns a copy of the logical tasks.
func (c *Controller) Tasks() []task.Range { return c.tasks.All() }

// Task returns a logical task by id.
func (c *Controller) Task(id string) (task.Range, bool) {
	return c.tasks.Get(id)
}

// Next shows the following month.
func (c *Controller) Next() error { return c.shift(1) }

// Prev shows the previous month.
func (c *Controller) Prev() error { return c.shift(-1) }

// Today shows the current month and refreshes today's date.
func (c *Controller) Today() error {
	now := c.now()
	c.view.Today = dateutil.FormatKey(now)
	return c.Goto(now.Year(), int(now.Month()))
}

// Goto shows the given month.
func (c *Controller) Goto(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", dateutil.ErrInvalidMonth, month)
	}
	c.drag.Abort()
	prev := c.view
	c.view.Year, c.view.Month = year, month
	if err := c.draw(); err != nil {
		c.view = prev
		return err
	}
	return nil
}

// GotoDate shows the month containing key.
func (c *Controller) GotoDate(key string) error {
	t, err := dateutil.ParseKey(key)
	if err != nil {
		return err
	}
	return c.Goto(t.Year(), int(t.Month()))
}

func (c *Controller) shift(n int) error {
	y, m := dateutil.MonthShift(c.view.Year, c.view.Month, n)
	return c.Goto(y, m)
}

// OnAddTaskRange subscribes to add-task requests carrying a date key.
func (c *Controller) OnAddTaskRange(fn func(day string)) event.Token {
	return c.bus.AddTaskRange.Subscribe(fn)
}

// OnClickRange subscribes to clicks on task bars.
func (c *Controller) OnClickRange(fn func(event.RangePointer)) event.Token {
	return c.bus.ClickRange.Subscribe(fn)
}

// OnUpdateTask subscribes to committed drags.
func (c *Controller) OnUpdateTask(fn func(event.TaskUpdate)) event.Token {
	return c.bus.UpdateTask.Subscribe(fn)
}

// OnContextMenu subscribes to context menu requests on task bars.
func (c *Controller) OnContextMenu(fn func(event.RangePointer)) event.Token {
	return c.bus.ContextMenu.Subscribe(fn)
}

// OnClickSurpassTip subscribes to overflow chip clicks. The payload holds
// the logical tasks containing the chip's day.
func (c *Controller) OnClickSurpassTip(fn func([]task.Range)) event.Token {
	return c.bus.ClickSurpassTip.Subscribe(fn)
}

// Unsubscribe removes any subscription made through the controller.
func (c *Controller) Unsubscribe(tok event.Token) bool {
	return c.bus.Unsubscribe(tok)
}

func (c *Controller) logEmit(kind event.Kind, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["kind"] = kind.String()
	c.log.Log("EVENT_EMIT", data)
}

// dragResolver adapts the controller to drag.Resolver.
type dragResolver struct{ c *Controller }

func (r dragResolver) CellAt(p geom.Point) (string, bool) {
	cell, ok := r.c.grid.CellAt(p)
	return cell.Key, ok
}

func (r dragResolver) TaskStart(id string) (string, bool) {
	t, ok := r.c.tasks.Get(id)
	return t.StartTime, ok
}

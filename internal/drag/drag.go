// Package drag implements the press/drag/release state machine that
// reschedules a task by dropping its bar on another day cell.
package drag

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/debuglog"
	"github.com/javiermolinar/taskcal/internal/geom"
)

// Cancellation reasons.
var (
	ErrDragTargetMissing = errors.New("drag target missing")
	ErrNoMove            = errors.New("drop target equals drag origin")
)

// State is the session state.
type State int

// Session states.
const (
	Idle State = iota
	Pressed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is how a press ended.
type Result int

// Press results.
const (
	// None means there was no press to finish.
	None Result = iota
	// Click is a press released without any drag movement.
	Click
	Committed
	Cancelled
)

func (r Result) String() string {
	switch r {
	case None:
		return "none"
	case Click:
		return "click"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Bar is the task bar under the press.
type Bar struct {
	SegmentID string
	ParentID  string
	// Day is the parent task's total span in days.
	Day  int
	Rect geom.Rect
}

// Outcome describes the end of a press.
type Outcome struct {
	Result Result
	Bar    Bar
	// Press is where the pointer went down.
	Press geom.Point
	// NewStart and NewEnd are set when Result is Committed.
	NewStart string
	NewEnd   string
	// Reason is set when Result is Cancelled.
	Reason error
}

// Capture is a host-wide pointer capture that must be released.
type Capture interface {
	Release()
}

// Capturer acquires a pointer capture so a release outside the stage is
// still delivered to the session.
type Capturer interface {
	Capture() Capture
}

// Hooks let the owner draw the drag feedback.
type Hooks struct {
	// Begin runs when dragging starts: clone the ghost and dim the source.
	Begin func(b Bar)
	// Move runs on every drag move with the ghost rectangle.
	Move func(b Bar, ghost geom.Rect)
	// End runs on every exit from Dragging: drop the ghost and restore styles.
	End func(b Bar)
}

// Resolver maps the drop to calendar data.
type Resolver interface {
	// CellAt returns the date key of the day cell containing p.
	CellAt(p geom.Point) (string, bool)
	// TaskStart returns the current start date of a logical task.
	TaskStart(id string) (string, bool)
}

// Session tracks at most one press or drag at a time.
type Session struct {
	state    State
	readOnly bool

	bar    Bar
	press  geom.Point
	offset geom.Point

	capturer Capturer
	capture  Capture
	hooks    Hooks
	log      debuglog.Logger
}

// New creates an idle session. capturer and logger may be nil.
func New(capturer Capturer, hooks Hooks, logger debuglog.Logger) *Session {
	return &Session{
		capturer: capturer,
		hooks:    hooks,
		log:      debuglog.OrNop(logger),
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Bar returns the pressed bar. It is only meaningful outside Idle.
func (s *Session) Bar() Bar { return s.bar }

// SetReadOnly toggles read-only mode. A read-only session never leaves Idle.
func (s *Session) SetReadOnly(readOnly bool) {
	s.readOnly = readOnly
}

// Press starts a press on bar at p. It reports false when the press is
// rejected: the session is read-only or a press is already active.
func (s *Session) Press(bar Bar, p geom.Point) bool {
	if s.readOnly || s.state != Idle {
		return false
	}
	s.state = Pressed
	s.bar = bar
	s.press = p
	s.offset = p.Sub(bar.Rect.Origin())
	return true
}

// Move advances the drag to p. The first move after a press with a
// non-zero offset starts dragging and acquires the pointer capture. It
// returns the ghost rectangle and whether a drag is in progress.
func (s *Session) Move(p geom.Point) (geom.Rect, bool) {
	switch s.state {
	case Pressed:
		if s.offset.IsZero() {
			return geom.Rect{}, false
		}
		s.state = Dragging
		if s.capturer != nil {
			s.capture = s.capturer.Capture()
		}
		if s.hooks.Begin != nil {
			s.hooks.Begin(s.bar)
		}
		s.log.Log("DRAG_START", map[string]any{
			"segment": s.bar.SegmentID,
			"parent":  s.bar.ParentID,
			"x":       p.X,
			"y":       p.Y,
		})
	case Dragging:
	default:
		return geom.Rect{}, false
	}

	ghost := s.bar.Rect
	ghost.X = p.X - s.offset.X
	ghost.Y = p.Y - s.offset.Y
	if s.hooks.Move != nil {
		s.hooks.Move(s.bar, ghost)
	}
	return ghost, true
}

// Release finishes the press at p. A press without drag movement is a
// Click. A drag commits only when both the drop cell and the press cell
// resolve, the parent task exists, and the drop cell differs from both the
// press cell and the task's current start. The session is Idle afterwards
// and the capture is released on every path.
func (s *Session) Release(p geom.Point, r Resolver) Outcome {
	switch s.state {
	case Idle:
		return Outcome{Result: None}
	case Pressed:
		out := Outcome{Result: Click, Bar: s.bar, Press: s.press}
		s.reset()
		return out
	}

	defer s.finish()

	out := s.decide(p, r)
	if out.Result == Committed {
		s.log.Log("DRAG_COMMIT", map[string]any{
			"parent": out.Bar.ParentID,
			"start":  out.NewStart,
			"end":    out.NewEnd,
		})
	} else {
		s.log.Log("DRAG_CANCEL", map[string]any{
			"parent": out.Bar.ParentID,
			"reason": out.Reason.Error(),
		})
	}
	return out
}

func (s *Session) decide(p geom.Point, r Resolver) Outcome {
	out := Outcome{Result: Cancelled, Bar: s.bar, Press: s.press}

	target, ok := r.CellAt(p)
	if !ok {
		out.Reason = fmt.Errorf("%w: no day cell at drop point", ErrDragTargetMissing)
		return out
	}
	source, ok := r.CellAt(s.press)
	if !ok {
		out.Reason = fmt.Errorf("%w: no day cell at press point", ErrDragTargetMissing)
		return out
	}
	start, ok := r.TaskStart(s.bar.ParentID)
	if !ok {
		out.Reason = fmt.Errorf("%w: task %q not found", ErrDragTargetMissing, s.bar.ParentID)
		return out
	}
	if target == source || target == start {
		out.Reason = ErrNoMove
		return out
	}

	day := max(s.bar.Day, 1)
	end, err := dateutil.AddDays(target, day-1)
	if err != nil {
		out.Reason = fmt.Errorf("%w: %w", ErrDragTargetMissing, err)
		return out
	}

	out.Result = Committed
	out.NewStart = target
	out.NewEnd = end
	out.Reason = nil
	return out
}

// Abort ends any press or drag without an outcome.
func (s *Session) Abort() {
	switch s.state {
	case Dragging:
		s.log.Log("DRAG_CANCEL", map[string]any{
			"parent": s.bar.ParentID,
			"reason": "aborted",
		})
		s.finish()
	case Pressed:
		s.reset()
	}
}

// finish is the terminal action of a drag.
func (s *Session) finish() {
	bar := s.bar
	capture := s.capture
	s.reset()

	if capture != nil {
		capture.Release()
	}
	if s.hooks.End != nil {
		s.hooks.End(bar)
	}
}

func (s *Session) reset() {
	s.state = Idle
	s.bar = Bar{}
	s.press = geom.Point{}
	s.offset = geom.Point{}
	s.capture = nil
}

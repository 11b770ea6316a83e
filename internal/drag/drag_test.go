package drag

import (
	"errors"
	"testing"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/geom"
)

type fakeCapture struct{ released *int }

func (c fakeCapture) Release() { *c.released++ }

type fakeCapturer struct {
	acquired int
	released int
}

func (c *fakeCapturer) Capture() Capture {
	c.acquired++
	return fakeCapture{released: &c.released}
}

// fakeResolver maps cells of a 100px-wide single row to date keys:
// x in [0,100) is 2024-10-07, [100,200) is 2024-10-08, and so on.
type fakeResolver struct {
	starts map[string]string
}

func (r fakeResolver) CellAt(p geom.Point) (string, bool) {
	if p.X < 0 || p.Y < 0 || p.Y > 100 || p.X >= 700 {
		return "", false
	}
	key, _ := dateutil.AddDays("2024-10-07", int(p.X)/100)
	return key, true
}

func (r fakeResolver) TaskStart(id string) (string, bool) {
	s, ok := r.starts[id]
	return s, ok
}

func newResolver() fakeResolver {
	return fakeResolver{starts: map[string]string{"task": "2024-10-07"}}
}

type hookLog struct {
	begins, moves, ends int
	lastGhost           geom.Rect
}

func (h *hookLog) hooks() Hooks {
	return Hooks{
		Begin: func(Bar) { h.begins++ },
		Move:  func(_ Bar, g geom.Rect) { h.moves++; h.lastGhost = g },
		End:   func(Bar) { h.ends++ },
	}
}

func testBar() Bar {
	return Bar{
		SegmentID: "seg",
		ParentID:  "task",
		Day:       5,
		Rect:      geom.Rect{X: 10, Y: 35, W: 480, H: 20},
	}
}

func TestSession_CommitPreservesDuration(t *testing.T) {
	capt := &fakeCapturer{}
	hl := &hookLog{}
	s := New(capt, hl.hooks(), nil)

	if !s.Press(testBar(), geom.Point{X: 50, Y: 40}) {
		t.Fatal("press rejected")
	}
	if s.State() != Pressed {
		t.Fatalf("state = %v, want pressed", s.State())
	}

	ghost, dragging := s.Move(geom.Point{X: 250, Y: 45})
	if !dragging || s.State() != Dragging {
		t.Fatal("expected dragging after first move")
	}
	if ghost != (geom.Rect{X: 210, Y: 40, W: 480, H: 20}) {
		t.Errorf("ghost = %+v", ghost)
	}
	s.Move(geom.Point{X: 350, Y: 45})

	out := s.Release(geom.Point{X: 350, Y: 45}, newResolver())

	if out.Result != Committed {
		t.Fatalf("result = %v (%v), want committed", out.Result, out.Reason)
	}
	if out.NewStart != "2024-10-10" || out.NewEnd != "2024-10-14" {
		t.Errorf("new range = [%s..%s], want [2024-10-10..2024-10-14]", out.NewStart, out.NewEnd)
	}
	span, _ := dateutil.SpanDays(out.NewStart, out.NewEnd)
	if span != 5 {
		t.Errorf("committed span = %d, want 5", span)
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if capt.acquired != 1 || capt.released != 1 {
		t.Errorf("capture acquired %d released %d, want 1 and 1", capt.acquired, capt.released)
	}
	if hl.begins != 1 || hl.moves != 2 || hl.ends != 1 {
		t.Errorf("hooks begin=%d move=%d end=%d", hl.begins, hl.moves, hl.ends)
	}
}

func TestSession_CancelPaths(t *testing.T) {
	tests := []struct {
		name     string
		release  geom.Point
		resolver fakeResolver
		want     error
	}{
		{
			name:     "dropped on origin cell",
			release:  geom.Point{X: 60, Y: 40},
			resolver: fakeResolver{starts: map[string]string{"task": "2024-10-01"}},
			want:     ErrNoMove,
		},
		{
			name:     "dropped on task start",
			release:  geom.Point{X: 150, Y: 40},
			resolver: fakeResolver{starts: map[string]string{"task": "2024-10-08"}},
			want:     ErrNoMove,
		},
		{
			name:     "dropped outside any cell",
			release:  geom.Point{X: 900, Y: 40},
			resolver: newResolver(),
			want:     ErrDragTargetMissing,
		},
		{
			name:     "parent task gone",
			release:  geom.Point{X: 350, Y: 40},
			resolver: fakeResolver{starts: map[string]string{}},
			want:     ErrDragTargetMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capt := &fakeCapturer{}
			hl := &hookLog{}
			s := New(capt, hl.hooks(), nil)

			s.Press(testBar(), geom.Point{X: 50, Y: 40})
			s.Move(geom.Point{X: 55, Y: 40})
			out := s.Release(tt.release, tt.resolver)

			if out.Result != Cancelled {
				t.Fatalf("result = %v, want cancelled", out.Result)
			}
			if !errors.Is(out.Reason, tt.want) {
				t.Errorf("reason = %v, want %v", out.Reason, tt.want)
			}
			if out.NewStart != "" || out.NewEnd != "" {
				t.Error("cancelled outcome must not carry dates")
			}
			if capt.released != 1 || hl.ends != 1 {
				t.Errorf("capture released %d, end hook %d, want 1 and 1", capt.released, hl.ends)
			}
			if s.State() != Idle {
				t.Errorf("state = %v, want idle", s.State())
			}
		})
	}
}

func TestSession_PressThenReleaseIsClick(t *testing.T) {
	capt := &fakeCapturer{}
	hl := &hookLog{}
	s := New(capt, hl.hooks(), nil)

	s.Press(testBar(), geom.Point{X: 50, Y: 40})
	out := s.Release(geom.Point{X: 50, Y: 40}, newResolver())

	if out.Result != Click {
		t.Fatalf("result = %v, want click", out.Result)
	}
	if out.Bar.ParentID != "task" || out.Press != (geom.Point{X: 50, Y: 40}) {
		t.Errorf("unexpected click outcome %+v", out)
	}
	if capt.acquired != 0 || hl.begins != 0 || hl.ends != 0 {
		t.Error("a click must not start drag feedback")
	}
}

func TestSession_ZeroOffsetNeverDrags(t *testing.T) {
	s := New(nil, Hooks{}, nil)
	bar := testBar()
	s.Press(bar, bar.Rect.Origin())

	if _, dragging := s.Move(geom.Point{X: 300, Y: 40}); dragging {
		t.Error("a press exactly on the bar origin should not start a drag")
	}
	if s.State() != Pressed {
		t.Errorf("state = %v, want pressed", s.State())
	}
}

func TestSession_ReadOnlyNeverLeavesIdle(t *testing.T) {
	s := New(nil, Hooks{}, nil)
	s.SetReadOnly(true)

	if s.Press(testBar(), geom.Point{X: 50, Y: 40}) {
		t.Error("read-only session accepted a press")
	}
	if _, dragging := s.Move(geom.Point{X: 250, Y: 40}); dragging {
		t.Error("read-only session started a drag")
	}
	if out := s.Release(geom.Point{X: 250, Y: 40}, newResolver()); out.Result != None {
		t.Errorf("result = %v, want none", out.Result)
	}
}

func TestSession_SecondPressRejectedWhileActive(t *testing.T) {
	s := New(nil, Hooks{}, nil)
	s.Press(testBar(), geom.Point{X: 50, Y: 40})
	s.Move(geom.Point{X: 150, Y: 40})

	other := testBar()
	other.ParentID = "other"
	if s.Press(other, geom.Point{X: 20, Y: 40}) {
		t.Error("press accepted during an active drag")
	}
	if s.Bar().ParentID != "task" {
		t.Error("active drag bar was replaced")
	}
}

func TestSession_Abort(t *testing.T) {
	capt := &fakeCapturer{}
	hl := &hookLog{}
	s := New(capt, hl.hooks(), nil)

	s.Press(testBar(), geom.Point{X: 50, Y: 40})
	s.Move(geom.Point{X: 150, Y: 40})
	s.Abort()

	if s.State() != Idle || capt.released != 1 || hl.ends != 1 {
		t.Errorf("abort: state=%v released=%d ends=%d", s.State(), capt.released, hl.ends)
	}

	// Aborting an idle session is a no-op.
	s.Abort()
	if capt.released != 1 || hl.ends != 1 {
		t.Error("abort on idle session ran the terminal action again")
	}
}

type panicResolver struct{}

func (panicResolver) CellAt(geom.Point) (string, bool) { panic("resolver failed") }
func (panicResolver) TaskStart(string) (string, bool)  { return "", false }

func TestSession_CaptureReleasedOnPanic(t *testing.T) {
	capt := &fakeCapturer{}
	s := New(capt, Hooks{}, nil)
	s.Press(testBar(), geom.Point{X: 50, Y: 40})
	s.Move(geom.Point{X: 150, Y: 40})

	func() {
		defer func() { _ = recover() }()
		s.Release(geom.Point{X: 150, Y: 40}, panicResolver{})
	}()

	if capt.released != 1 {
		t.Errorf("capture released %d times, want 1", capt.released)
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestSession_CommitAcrossYear(t *testing.T) {
	s := New(nil, Hooks{}, nil)
	bar := testBar()
	bar.Day = 10
	s.Press(bar, geom.Point{X: 50, Y: 40})
	s.Move(geom.Point{X: 60, Y: 40})

	r := yearEndResolver{}
	out := s.Release(geom.Point{X: 1, Y: 1}, r)
	if out.Result != Committed {
		t.Fatalf("result = %v (%v)", out.Result, out.Reason)
	}
	if out.NewStart != "2024-12-28" || out.NewEnd != "2025-01-06" {
		t.Errorf("new range = [%s..%s]", out.NewStart, out.NewEnd)
	}
}

type yearEndResolver struct{}

func (yearEndResolver) CellAt(p geom.Point) (string, bool) {
	if p.X == 1 {
		return "2024-12-28", true
	}
	return "2024-12-01", true
}

func (yearEndResolver) TaskStart(string) (string, bool) { return "2024-12-01", true }

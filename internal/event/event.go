// Package event is a typed publish/subscribe registry for calendar
// interaction events.
package event

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/javiermolinar/taskcal/internal/task"
)

// Kind identifies an event.
type Kind int

// Event kinds.
const (
	AddTaskRange Kind = iota + 1
	ClickRange
	UpdateTask
	ContextMenu
	ClickSurpassTip
)

// String returns the wire name of the event.
func (k Kind) String() string {
	switch k {
	case AddTaskRange:
		return "ADDTASKRANGE"
	case ClickRange:
		return "CLICKRANGE"
	case UpdateTask:
		return "UPDATETASK"
	case ContextMenu:
		return "CONTEXTMENU"
	case ClickSurpassTip:
		return "CLICKSURPASSTIP"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RangePointer is the payload of ClickRange and ContextMenu: the pointer
// position and the logical task id under it.
type RangePointer struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID string  `json:"id"`
}

// TaskUpdate is the payload of UpdateTask.
type TaskUpdate struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Token identifies a subscription.
type Token struct {
	kind Kind
	id   uint64
}

// Kind returns the event kind the token is subscribed to.
func (t Token) Kind() Kind { return t.kind }

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Topic is the ordered subscriber list for one event kind.
type Topic[T any] struct {
	kind Kind
	mu   sync.Mutex
	next uint64
	subs []subscriber[T]
}

// NewTopic returns an empty topic for kind.
func NewTopic[T any](kind Kind) *Topic[T] {
	return &Topic[T]{kind: kind}
}

// Subscribe registers fn. Handlers run in subscription order.
func (t *Topic[T]) Subscribe(fn func(T)) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.subs = append(t.subs, subscriber[T]{id: t.next, fn: fn})
	return Token{kind: t.kind, id: t.next}
}

// Once registers fn to run on the next emission only.
func (t *Topic[T]) Once(fn func(T)) Token {
	var (
		tok   Token
		fired atomic.Bool
	)
	tok = t.Subscribe(func(v T) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		t.Unsubscribe(tok)
		fn(v)
	})
	return tok
}

// Unsubscribe removes the subscription. It reports whether it was present.
func (t *Topic[T]) Unsubscribe(tok Token) bool {
	if tok.kind != t.kind {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, s := range t.subs {
		if s.id == tok.id {
			t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every current subscriber with v and returns how many ran.
// Handlers may subscribe or unsubscribe during emission; changes apply to
// the next Emit.
func (t *Topic[T]) Emit(v T) int {
	t.mu.Lock()
	snapshot := make([]subscriber[T], len(t.subs))
	copy(snapshot, t.subs)
	t.mu.Unlock()

	for _, s := range snapshot {
		s.fn(v)
	}
	return len(snapshot)
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Bus groups the calendar's topics.
type Bus struct {
	AddTaskRange    *Topic[string]
	ClickRange      *Topic[RangePointer]
	UpdateTask      *Topic[TaskUpdate]
	ContextMenu     *Topic[RangePointer]
	ClickSurpassTip *Topic[[]task.Range]
}

// NewBus returns a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{
		AddTaskRange:    NewTopic[string](AddTaskRange),
		ClickRange:      NewTopic[RangePointer](ClickRange),
		UpdateTask:      NewTopic[TaskUpdate](UpdateTask),
		ContextMenu:     NewTopic[RangePointer](ContextMenu),
		ClickSurpassTip: NewTopic[[]task.Range](ClickSurpassTip),
	}
}

// Unsubscribe removes a subscription from whichever topic issued tok.
func (b *Bus) Unsubscribe(tok Token) bool {
	switch tok.kind {
	case AddTaskRange:
		return b.AddTaskRange.Unsubscribe(tok)
	case ClickRange:
		return b.ClickRange.Unsubscribe(tok)
	case UpdateTask:
		return b.UpdateTask.Unsubscribe(tok)
	case ContextMenu:
		return b.ContextMenu.Unsubscribe(tok)
	case ClickSurpassTip:
		return b.ClickSurpassTip.Unsubscribe(tok)
	default:
		return false
	}
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/drag"
	"github.com/javiermolinar/taskcal/internal/event"
	"github.com/javiermolinar/taskcal/internal/task"
)

// pendingEvent is a calendar event waiting to be applied to the model.
type pendingEvent struct {
	kind    event.Kind
	day     string
	pointer event.RangePointer
	update  event.TaskUpdate
	tasks   []task.Range
}

// eventInbox collects events emitted while the controller handles input.
// Subscribers cannot touch the bubbletea model directly, so Update drains
// the inbox after every controller call.
type eventInbox struct {
	pending []pendingEvent
}

func (in *eventInbox) push(e pendingEvent) {
	in.pending = append(in.pending, e)
}

func (in *eventInbox) drain() []pendingEvent {
	out := in.pending
	in.pending = nil
	return out
}

func (in *eventInbox) subscribe(c *calendar.Controller) {
	c.OnAddTaskRange(func(day string) {
		in.push(pendingEvent{kind: event.AddTaskRange, day: day})
	})
	c.OnClickRange(func(p event.RangePointer) {
		in.push(pendingEvent{kind: event.ClickRange, pointer: p})
	})
	c.OnContextMenu(func(p event.RangePointer) {
		in.push(pendingEvent{kind: event.ContextMenu, pointer: p})
	})
	c.OnClickSurpassTip(func(tasks []task.Range) {
		in.push(pendingEvent{kind: event.ClickSurpassTip, tasks: tasks})
	})
	c.OnUpdateTask(func(u event.TaskUpdate) {
		in.push(pendingEvent{kind: event.UpdateTask, update: u})
	})
}

// pointerCapture tracks whether the drag session holds the pointer. The
// terminal reports motion everywhere, so holding it only stops a drag
// from being treated as the pointer leaving the calendar.
type pointerCapture struct {
	depth int
}

type captureHandle struct {
	c *pointerCapture
}

func (h captureHandle) Release() {
	if h.c.depth > 0 {
		h.c.depth--
	}
}

// Capture implements drag.Capturer.
func (c *pointerCapture) Capture() drag.Capture {
	c.depth++
	return captureHandle{c: c}
}

func (c *pointerCapture) held() bool { return c.depth > 0 }

func (c *pointerCapture) reset() { c.depth = 0 }

// applyEvents drains the inbox and applies each event's effect.
func (m Model) applyEvents() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, e := range m.inbox.drain() {
		var cmd tea.Cmd
		m, cmd = m.applyEvent(e)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applyEvent(e pendingEvent) (Model, tea.Cmd) {
	switch e.kind {
	case event.AddTaskRange:
		return m.openTaskForm(e.day)

	case event.ClickRange:
		m.selectedID = e.pointer.ID
		if t, ok := m.ctrl.Task(e.pointer.ID); ok {
			return m, statusCmd("Selected " + describe(t))
		}

	case event.ContextMenu:
		m = m.openTaskDetail(e.pointer.ID)

	case event.ClickSurpassTip:
		day := ""
		if cell, ok := m.ctrl.Grid().CellAt(m.pointer); ok {
			day = cell.Key
		}
		m = m.openTaskList(day, e.tasks)

	case event.UpdateTask:
		m.dirty = true
		t, _ := m.ctrl.Task(e.update.ID)
		return m, statusCmd(fmt.Sprintf("Moved %s to %s..%s", describe(t), e.update.StartTime, e.update.EndTime))
	}
	return m, nil
}

func (m Model) setMode(mode Mode, reason string) Model {
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
	return m
}

func (m Model) openTaskForm(day string) (Model, tea.Cmd) {
	if m.ctrl.Mode() == calendar.ModeRead {
		return m, statusCmd("Calendar is read-only")
	}
	m = m.setMode(ModeModal, "add task")
	m.modalType = ModalTaskForm
	m.formDay = day
	m.formDesc.SetValue("")
	m.formDesc.Focus()
	return m, textinput.Blink
}

func (m Model) openTaskDetail(id string) Model {
	if _, ok := m.ctrl.Task(id); !ok {
		return m
	}
	m = m.setMode(ModeModal, "task detail")
	m.modalType = ModalTaskDetail
	m.detailID = id
	m.selectedID = id
	return m
}

func (m Model) openTaskList(day string, tasks []task.Range) Model {
	m = m.setMode(ModeModal, "task list")
	m.modalType = ModalTaskList
	m.listDay = day
	m.listIDs = make([]string, 0, len(tasks))
	for _, t := range tasks {
		m.listIDs = append(m.listIDs, t.ID)
	}
	m.listCursor = 0
	return m
}

func (m Model) closeModal() Model {
	m = m.setMode(ModeNormal, "close modal")
	m.modalType = ModalNone
	m.formDesc.Blur()
	return m
}

// listTasks resolves the overflow list ids against the current tasks.
func (m Model) listTasks() []task.Range {
	out := make([]task.Range, 0, len(m.listIDs))
	for _, id := range m.listIDs {
		if t, ok := m.ctrl.Task(id); ok {
			out = append(out, t)
		}
	}
	return out
}

func describe(t task.Range) string {
	if t.Description == "" {
		return "Untitled"
	}
	return fmt.Sprintf("%q", t.Description)
}

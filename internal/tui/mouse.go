package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/drag"
	"github.com/javiermolinar/taskcal/internal/geom"
)

// cellPoint maps a terminal cell to the center of that cell in stage
// coordinates.
func cellPoint(x, y int) geom.Point {
	return geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// onStage reports whether p lies on the painted calendar.
func (m Model) onStage(p geom.Point) bool {
	w, h := m.ctrl.Renderer().Size()
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

// handleMouseMsg forwards pointer input to the calendar. Only normal mode
// takes the mouse; modals and the prompt own the screen otherwise.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)
	if m.mode != ModeNormal {
		return m, nil
	}

	p := cellPoint(msg.X, msg.Y)
	m.pointer = p
	if !m.onStage(p) && !m.capture.held() {
		m.ctrl.PointerLeave()
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.ctrl.PointerDown(p, calendar.ButtonLeft)
		case tea.MouseButtonRight:
			if m.ctrl.DragState() != drag.Idle {
				m.ctrl.PointerDown(p, calendar.ButtonRight)
				break
			}
			m.ctrl.ContextMenu(p)
		case tea.MouseButtonMiddle:
			m.ctrl.PointerDown(p, calendar.ButtonMiddle)
		case tea.MouseButtonWheelUp:
			return m.shiftMonth(-1)
		case tea.MouseButtonWheelDown:
			return m.shiftMonth(1)
		}

	case tea.MouseActionMotion:
		m.ctrl.PointerMove(p)

	case tea.MouseActionRelease:
		// Some terminals report releases without a button.
		switch msg.Button {
		case tea.MouseButtonRight:
			m.ctrl.PointerUp(p, calendar.ButtonRight)
		case tea.MouseButtonMiddle:
			m.ctrl.PointerUp(p, calendar.ButtonMiddle)
		default:
			m.ctrl.PointerUp(p, calendar.ButtonLeft)
		}
	}

	return m.applyEvents()
}

// shiftMonth shows the previous month for negative n and the next one
// otherwise. A drag in progress is aborted.
func (m Model) shiftMonth(n int) (tea.Model, tea.Cmd) {
	var err error
	if n < 0 {
		err = m.ctrl.Prev()
	} else {
		err = m.ctrl.Next()
	}
	if err != nil {
		LogError("shift month", err)
		m.statusMsg = "Error: " + err.Error()
	}
	return m, nil
}

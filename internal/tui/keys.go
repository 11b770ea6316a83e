package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/task"
	"github.com/javiermolinar/taskcal/internal/tui/commands"
	"github.com/javiermolinar/taskcal/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n", "l", "right":
		return m.shiftMonth(1)

	case "p", "h", "left":
		return m.shiftMonth(-1)

	case "t":
		if err := m.ctrl.Today(); err != nil {
			LogError("today", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		}
		return m, nil

	case "/", ":":
		return m.openPrompt("/")

	case "g":
		return m.openPrompt("/goto ")

	case "a":
		if !m.ctrl.ClickAddTask() {
			m.statusMsg = "Hover a day to add a task"
			return m, nil
		}
		return m.applyEvents()

	case "enter":
		if m.selectedID == "" {
			return m, nil
		}
		return m.openTaskDetail(m.selectedID), nil

	case "y":
		return m.copySelected(m.selectedID)

	case "ctrl+s":
		return m.save()

	case "e":
		return m.export("")

	case "?":
		m = m.setMode(ModeModal, "help")
		m.modalType = ModalHelp
		return m, nil

	case "esc":
		m.selectedID = ""
		m.statusMsg = ""
		return m, nil
	}
	return m, nil
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m = m.setMode(ModePrompt, "prompt")
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	return m, m.prompt.Focus()
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.setMode(ModeNormal, "prompt cancelled")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m = m.setMode(ModeNormal, "prompt submitted")
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys routes keys to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalTaskForm:
		return m.handleTaskFormKeys(msg)
	case ModalTaskDetail:
		return m.handleTaskDetailKeys(msg)
	case ModalTaskList:
		return m.handleTaskListKeys(msg)
	default:
		switch msg.String() {
		case "esc", "q", "?":
			return m.closeModal(), nil
		}
	}
	return m, nil
}

// handleTaskFormKeys handles keys in the add-task form.
func (m Model) handleTaskFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeModal()
		m.formDesc.SetValue("")
		return m, nil

	case "enter":
		return m.saveTaskFromForm()
	}

	var cmd tea.Cmd
	m.formDesc, cmd = m.formDesc.Update(msg)
	return m, cmd
}

// saveTaskFromForm adds a one-day task on the form's day.
func (m Model) saveTaskFromForm() (tea.Model, tea.Cmd) {
	r, err := task.New("", m.formDay, m.formDay, "", m.formDesc.Value())
	if err == nil {
		err = m.ctrl.AddTasks(*r)
	}
	if err != nil {
		LogError("add task", err)
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m = m.closeModal()
	m.formDesc.SetValue("")
	m.selectedID = r.ID
	m.dirty = true
	return m, statusCmd("Added " + describe(*r) + " on " + r.StartTime)
}

// handleTaskDetailKeys handles keys in the task detail modal.
func (m Model) handleTaskDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		return m.closeModal(), nil

	case "y":
		return m.copySelected(m.detailID)

	case "x", "delete":
		if m.ctrl.Mode() == calendar.ModeRead {
			return m, nil
		}
		t, _ := m.ctrl.Task(m.detailID)
		if err := m.ctrl.RemoveTask(m.detailID); err != nil {
			LogError("remove task", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		if m.selectedID == m.detailID {
			m.selectedID = ""
		}
		m = m.closeModal()
		m.dirty = true
		return m, statusCmd("Deleted " + describe(t))
	}
	return m, nil
}

// handleTaskListKeys handles keys in the overflow list modal.
func (m Model) handleTaskListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.listIDs)
	switch msg.String() {
	case "esc", "q":
		return m.closeModal(), nil

	case "j", "down":
		if m.listCursor < n-1 {
			m.listCursor++
		}

	case "k", "up":
		if m.listCursor > 0 {
			m.listCursor--
		}

	case "enter":
		if m.listCursor < n {
			return m.openTaskDetail(m.listIDs[m.listCursor]), nil
		}
	}
	return m, nil
}

func (m Model) copySelected(id string) (tea.Model, tea.Cmd) {
	t, ok := m.ctrl.Task(id)
	if !ok {
		m.statusMsg = "No task selected"
		return m, nil
	}
	return m, commands.CopyRange(t)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.config.Tasks.Path == "" {
		m.statusMsg = "No task file configured"
		return m, nil
	}
	return m, commands.SaveTasks(m.config.Tasks.Path, m.ctrl.Tasks())
}

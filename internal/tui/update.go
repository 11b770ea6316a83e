package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/tui/commands"
)

// statusCmd shows a temporary status message.
func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg { return commands.StatusMsgCmd{Msg: msg} }
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if err := m.resize(msg.Width, msg.Height); err != nil {
			LogError("resize", err)
			m.err = err
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		}
		return m, nil

	case commands.TasksLoadedMsg:
		if err := m.ctrl.SetTasks(msg.Tasks); err != nil {
			LogError("set tasks", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.dirty = false
		return m, statusCmd(fmt.Sprintf("Loaded %d tasks from %s", len(msg.Tasks), msg.Path))

	case commands.TasksSavedMsg:
		m.dirty = false
		return m, statusCmd(fmt.Sprintf("Saved %d tasks to %s", msg.Count, msg.Path))

	case commands.ExportedMsg:
		return m, statusCmd("Exported " + msg.Path)

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModePrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case ModeModal:
		if m.modalType == ModalTaskForm {
			m.formDesc, cmd = m.formDesc.Update(msg)
		}
	}
	return m, cmd
}

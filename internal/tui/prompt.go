package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/export"
	"github.com/javiermolinar/taskcal/internal/tui/commands"
	"github.com/javiermolinar/taskcal/internal/tui/input"
	"github.com/javiermolinar/taskcal/internal/tui/view"
)

// promptContentWidth is the width available inside the prompt box.
func (m Model) promptContentWidth() int {
	frameW, _ := m.styles.PromptFocusedStyle.GetFrameSize()
	return max(m.width-frameW, 1)
}

func (m Model) promptLines() []string {
	width := m.promptContentWidth()
	state := view.PromptState{
		Value:      m.prompt.Value(),
		Cursor:     m.promptCursor(),
		ModePrompt: m.mode == ModePrompt,
	}
	lines := view.PromptLines(state, width, input.Commands)
	return view.ClampPromptLines(lines, promptMaxContentLines, width)
}

func (m Model) promptCursor() string {
	if m.mode != ModePrompt {
		return ""
	}
	return "█"
}

// footerH is the footer height. The prompt box grows with its suggestions
// and may cover the bottom of the month grid.
func (m Model) footerH() int {
	h := footerHeight
	if m.mode == ModePrompt {
		h = footerBaseLines + promptBorderLines + max(len(m.promptLines()), 1)
	}
	return min(h, max(m.height, 0))
}

// handlePromptSubmit runs a prompt line.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(value) == "" {
		return m, nil
	}
	cmd, err := input.Parse(value)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}

	switch cmd.Name {
	case "/goto":
		if cmd.Arg == "" {
			m.statusMsg = "Usage: /goto DATE"
			return m, nil
		}
		day, err := dateutil.ParseInput(cmd.Arg, m.now())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		if err := m.ctrl.GotoDate(day); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		}
		return m, nil

	case "/today":
		if err := m.ctrl.Today(); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		}
		return m, nil

	case "/next":
		return m.shiftMonth(1)

	case "/prev":
		return m.shiftMonth(-1)

	case "/add":
		day, err := dateutil.ParseInput(cmd.Arg, m.now())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		if err := m.ctrl.GotoDate(day); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		return m.openTaskForm(day)

	case "/export":
		return m.export(cmd.Arg)

	case "/save":
		return m.save()

	case "/help":
		m = m.setMode(ModeModal, "help")
		m.modalType = ModalHelp
		return m, nil
	}
	return m, nil
}

// export writes the visible month as a PNG at the configured pixel size.
// An empty path uses the configured export path.
func (m Model) export(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		path = m.config.Export.Path
	}
	metrics := calendar.PixelMetrics()
	metrics.Layout.MaxVisibleLanes = m.config.Calendar.MaxLanes
	snap, err := m.ctrl.Snapshot(metrics, m.config.Export.Width, m.config.Export.Height)
	if err != nil {
		LogError("export", err)
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	m.statusMsg = "Exporting..."
	return m, commands.ExportPNG(path, snap.Renderer(), export.Options{
		PixelRatio: m.config.Export.PixelRatio,
		Background: m.ctrl.Palette().Background,
	})
}

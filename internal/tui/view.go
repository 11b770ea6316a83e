package tui

import (
	"strings"

	"github.com/javiermolinar/taskcal/internal/tui/view"
)

const helpLine = "n/p month  t today  / prompt  a add  y copy  ^s save  e export  ? help  q quit"

// View renders the month grid with the footer below it.
func (m Model) View() string {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
	}

	metrics := m.ctrl.Metrics()
	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		MinWidth:         int(metrics.MinWidth),
		MinHeight:        int(metrics.MinHeight) + footerHeight,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		Overlay:          m.overlay.WithBackdrop(m.styles.ModalBackdropColor),
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) renderAppContent() string {
	footerH := m.footerH()
	gridH := m.height - footerH

	parts := make([]string, 0, 2)
	if gridH > 0 {
		grid := paintStage(m.ctrl.Renderer(), m.bg, m.fg).String()
		parts = append(parts, view.PadLinesWithBackground(grid, m.width, gridH, m.styles.colorBg))
	}
	if footerH > 0 {
		parts = append(parts, view.RenderFooter(m.footerModel(footerH)))
	}
	return strings.Join(parts, "\n")
}

func (m Model) footerModel(h int) view.FooterModel {
	return view.FooterModel{
		InnerW:           m.width,
		FooterH:          h,
		StatusText:       m.statusText(),
		HelpText:         helpLine,
		PromptLines:      m.promptLines(),
		PromptMax:        1,
		ShowPrompt:       true,
		PromptFocus:      m.mode == ModePrompt,
		StatusStyle:      m.styles.StatusStyle,
		HelpStyle:        m.styles.HelpStyle,
		PromptStyle:      m.styles.PromptStyle,
		PromptFocusStyle: m.styles.PromptFocusedStyle,
		Bg:               m.styles.colorFooter,
	}
}

// statusText is the transient status message, or the month title with the
// hovered day when there is none.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	text := m.ctrl.Title()
	if day, ok := m.ctrl.Hover(); ok {
		text += "  " + view.FormatDateLabel(day)
	}
	if m.dirty {
		text += "  [unsaved]"
	}
	return text
}

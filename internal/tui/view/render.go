// Package view provides view composition helpers for the TUI.
package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// OverlayRenderer renders modal overlays on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	MinWidth         int // below this the calendar is replaced by a notice
	MinHeight        int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}
	if state.Width < state.MinWidth || state.Height < state.MinHeight {
		return TooSmall(state)
	}

	if state.ShowModal && state.Overlay != nil {
		return state.Overlay.Render(state.BaseContent, state.Width, state.Height, state.ModalContent)
	}
	return state.BaseContent
}

// TooSmall centers a notice with the current and required window size.
func TooSmall(state ViewState) string {
	msg := fmt.Sprintf("Window too small\n%dx%d, need %dx%d",
		state.Width, state.Height, state.MinWidth, state.MinHeight)
	return lipgloss.Place(state.Width, state.Height, lipgloss.Center, lipgloss.Center, msg)
}

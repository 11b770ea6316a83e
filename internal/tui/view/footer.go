package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	FooterH     int
	StatusText  string
	HelpText    string
	PromptLines []string
	PromptMax   int
	// ShowPrompt reserves the prompt box even when it is not focused.
	ShowPrompt       bool
	PromptFocus      bool
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	Bg               lipgloss.Color
}

// RenderFooter renders the prompt, status and help lines bottom-aligned
// in a box of FooterH lines.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	parts := make([]string, 0, 3)
	if model.ShowPrompt {
		if model.PromptFocus {
			parts = append(parts, RenderPrompt(model.InnerW, model.PromptFocusStyle, model.PromptLines))
		} else {
			parts = append(parts, RenderPromptPlaceholder(model.InnerW, model.PromptStyle, model.PromptMax))
		}
	}
	parts = append(parts,
		footerLine(model.InnerW, model.StatusStyle, model.StatusText),
		footerLine(model.InnerW, model.HelpStyle, model.HelpText),
	)

	return PlaceBox(model.InnerW, model.FooterH, lipgloss.Bottom, strings.Join(parts, "\n"), model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = Truncate(content, contentWidth)
	}
	return style.Render(content)
}

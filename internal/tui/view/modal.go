package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalStyle             lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalBodyStyle         lipgloss.Style
}

// ModalButton is a key hint shown in a modal footer.
type ModalButton struct {
	Key   string
	Label string
}

func (b ModalButton) String() string {
	return "[" + b.Key + "] " + b.Label
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
// Empty sections are left out together with their spacing.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	sections := []string{styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title))}
	if body != "" {
		sections = append(sections, body)
	}
	if footer != "" {
		sections = append(sections, styles.ModalFooterStyle.Render(footer))
	}
	return styles.ModalStyle.Render(strings.Join(sections, "\n\n"))
}

// RenderModalButtons renders a row of buttons; the first one is the
// default action and is highlighted.
func RenderModalButtons(styles ModalStyles, buttons ...ModalButton) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		style := styles.ModalButtonStyle
		if i == 0 {
			style = styles.ModalButtonActiveStyle
		}
		parts[i] = style.Render(b.String())
	}
	return strings.Join(parts, styles.ModalBodyStyle.Render(" "))
}

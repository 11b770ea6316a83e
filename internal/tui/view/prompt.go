package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/taskcal/internal/tui/input"
)

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Value      string
	Cursor     string
	ModePrompt bool
}

// PromptLines builds prompt input and suggestion lines for the given width.
func PromptLines(state PromptState, contentWidth int, commands []input.PromptCommand) []string {
	lines := wrapTextWithPrefix(state.Value+state.Cursor, "> ", "  ", contentWidth)
	if !state.ModePrompt {
		return lines
	}
	for _, cmd := range input.PromptMatchingCommands(state.Value, commands) {
		line := cmd.Name + " " + cmd.Description
		lines = append(lines, wrapTextWithPrefix(line, "  ", "  ", contentWidth)...)
	}
	return lines
}

// ClampPromptLines clamps prompt lines to maxLines and adds an ellipsis if needed.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	clamped := append([]string(nil), lines[:maxLines]...)
	last := clamped[maxLines-1]
	if runewidth.StringWidth(last)+1 > width {
		last = runewidth.Truncate(last, max(width-1, 0), "")
	}
	clamped[maxLines-1] = last + "…"
	return clamped
}

// WrapTextToWidths wraps text across the provided widths, breaking at the
// last space that fits.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	width := firstWidth
	lineStart := 0
	lastSpace := -1
	lineWidth := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == ' ' {
			lastSpace = i
		}

		rw := runewidth.RuneWidth(r)
		if lineWidth+rw > width && i > lineStart {
			if lastSpace > lineStart {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				i = lastSpace
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
				i--
			}
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		lineWidth += rw
	}

	return append(lines, string(runes[lineStart:]))
}

// RenderPrompt renders the prompt box with the provided lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	style = style.Width(max(width-frameW, 0))
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderPromptPlaceholder renders an empty prompt box with matching height.
func RenderPromptPlaceholder(width int, style lipgloss.Style, maxContentLines int) string {
	frameW, _ := style.GetFrameSize()
	style = style.Width(max(width-frameW, 0))
	maxContentLines = max(maxContentLines, 1)
	return style.Render(strings.Repeat("\n", maxContentLines-1))
}

func wrapTextWithPrefix(s, prefix, continuation string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	firstWidth := max(width-len(prefix), 0)
	otherWidth := max(width-len(continuation), 0)

	lines := WrapTextToWidths(s, firstWidth, otherWidth)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = continuation + lines[i]
		}
	}
	return lines
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content in a w x h box on bg, left aligned and at the
// given vertical position.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground makes content exactly width x height: short lines
// are filled with bg, long lines are cut and missing lines are added.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = padLine(line, width, fill)
	}
	return strings.Join(out, "\n")
}

func padLine(line string, width int, fill lipgloss.Style) string {
	w := lipgloss.Width(line)
	switch {
	case w > width:
		return ansi.Cut(line, 0, width)
	case w < width:
		return line + fill.Render(strings.Repeat(" ", width-w))
	}
	return line
}

// Truncate cuts s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

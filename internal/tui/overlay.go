package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel composites a modal over the calendar. The modal is centered
// on a backdrop band that extends margin cells beyond it on every side.
type OverlayModel struct {
	backdrop lipgloss.Color
	margin   int
}

// NewOverlayModel returns an overlay with a one cell backdrop margin and no
// backdrop color.
func NewOverlayModel() OverlayModel {
	return OverlayModel{margin: 1}
}

// WithBackdrop returns a copy of o painting the backdrop band in c.
func (o OverlayModel) WithBackdrop(c lipgloss.Color) OverlayModel {
	o.backdrop = c
	return o
}

// Render places content over base, which is normalized to width x height.
// Empty content leaves base untouched.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	modal := trimTrailingEmpty(strings.Split(content, "\n"))
	if width <= 0 || height <= 0 || len(modal) == 0 {
		return base
	}

	contentW := 0
	for _, line := range modal {
		contentW = max(contentW, lipgloss.Width(line))
	}
	boxW := min(contentW+2*o.margin, width)
	boxH := min(len(modal)+2*o.margin, height)
	top := (height - boxH) / 2
	left := (width - boxW) / 2

	lines := normalizeLines(base, width, height)
	band := o.band(modal, boxW, boxH)
	for i, row := range band {
		y := top + i
		lines[y] = ansi.Cut(lines[y], 0, left) + row + ansi.Cut(lines[y], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// band renders boxH rows of exactly boxW cells: backdrop margin rows above
// and below, modal rows padded with backdrop in between.
func (o OverlayModel) band(modal []string, boxW, boxH int) []string {
	bg := o.backdropSeq()
	blank := func(n int) string {
		if n <= 0 {
			return ""
		}
		return bg + strings.Repeat(" ", n) + ansi.ResetStyle
	}

	innerW := max(boxW-2*o.margin, 0)
	rows := make([]string, boxH)
	for i := range rows {
		j := i - o.margin
		if j < 0 || j >= len(modal) || innerW == 0 {
			rows[i] = blank(boxW)
			continue
		}
		line := modal[j]
		if w := lipgloss.Width(line); w > innerW {
			line = ansi.Cut(line, 0, innerW)
		} else if w < innerW {
			line += blank(innerW - w)
		}
		left := min(o.margin, boxW)
		rows[i] = blank(left) + line + blank(boxW-left-innerW)
	}
	return rows
}

func (o OverlayModel) backdropSeq() string {
	if o.backdrop == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.backdrop))).String()
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalizeLines returns exactly height lines of exactly width cells.
func normalizeLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

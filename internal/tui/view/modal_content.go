package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TaskDetailModel contains the fields needed to render the task detail body.
type TaskDetailModel struct {
	Description string
	Dates       string
	SpanLabel   string
	Fill        string
	ID          string
}

// TaskDetailStyles groups styles for the task detail body.
type TaskDetailStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	MetaStyle  lipgloss.Style
}

// RenderTaskDetailBody renders the modal body for task details.
func RenderTaskDetailBody(model TaskDetailModel, styles TaskDetailStyles) string {
	var body strings.Builder

	body.WriteString(" " + styles.BodyStyle.Render(model.Description) + "\n\n")
	body.WriteString(styles.LabelStyle.Render(" Dates:") + styles.BodyStyle.Render(model.Dates) + "\n")
	body.WriteString(styles.LabelStyle.Render(" Length:") + styles.BodyStyle.Render(model.SpanLabel) + "\n")
	if model.Fill != "" {
		body.WriteString(styles.LabelStyle.Render(" Colour:") + styles.BodyStyle.Render(model.Fill) + "\n")
	}
	body.WriteString("\n" + styles.MetaStyle.Render(" "+model.ID))

	return body.String()
}

// TaskListLine is one task of the overflow list.
type TaskListLine struct {
	Dates       string
	Description string
	Selected    bool
}

// TaskListModel contains the fields needed to render the overflow list.
type TaskListModel struct {
	DateLabel string
	Lines     []TaskListLine
}

// TaskListStyles groups styles for the overflow list body.
type TaskListStyles struct {
	BodyStyle     lipgloss.Style
	MetaStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
}

// RenderTaskListBody renders every task on a day, marking the selection.
func RenderTaskListBody(model TaskListModel, styles TaskListStyles) string {
	var body strings.Builder

	body.WriteString(styles.MetaStyle.Render(" "+model.DateLabel) + "\n\n")
	for i, line := range model.Lines {
		text := fmt.Sprintf(" %s  %s", line.Dates, line.Description)
		style := styles.BodyStyle
		if line.Selected {
			text = ">" + text[1:]
			style = styles.SelectedStyle
		}
		body.WriteString(style.Render(text))
		if i < len(model.Lines)-1 {
			body.WriteString("\n")
		}
	}
	if len(model.Lines) == 0 {
		body.WriteString(styles.BodyStyle.Render(" No tasks."))
	}

	return body.String()
}

// TaskFormModel contains the fields needed to render the add-task form.
type TaskFormModel struct {
	DateLabel string
	// Input is the rendered text input.
	Input string
}

// TaskFormStyles groups styles for the add-task form body.
type TaskFormStyles struct {
	TagStyle          lipgloss.Style
	SectionTitleStyle lipgloss.Style
	InputStyle        lipgloss.Style
}

// RenderTaskFormBody renders the modal body for the add-task form.
func RenderTaskFormBody(model TaskFormModel, styles TaskFormStyles) string {
	var body strings.Builder

	body.WriteString(styles.TagStyle.Render(model.DateLabel) + "\n\n")
	body.WriteString(styles.SectionTitleStyle.Render("DESCRIPTION") + "\n")
	body.WriteString(styles.InputStyle.Render(model.Input))

	return body.String()
}

// HelpEntry is one key binding.
type HelpEntry struct {
	Keys        string
	Description string
}

// RenderHelpBody renders key bindings as two aligned columns.
func RenderHelpBody(entries []HelpEntry, styles TaskDetailStyles) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, styles.LabelStyle.Render(" "+e.Keys)+styles.BodyStyle.Render(e.Description))
	}
	return strings.Join(lines, "\n")
}

package view

import (
	"github.com/javiermolinar/taskcal/internal/task"
)

// NewTaskDetailModel builds a task detail model from a logical task.
func NewTaskDetailModel(r task.Range) TaskDetailModel {
	span := "?"
	if n, err := r.Span(); err == nil {
		span = FormatSpan(n)
	}
	desc := r.Description
	if desc == "" {
		desc = "Untitled"
	}
	return TaskDetailModel{
		Description: desc,
		Dates:       FormatDates(r.StartTime, r.EndTime),
		SpanLabel:   span,
		Fill:        r.Fill,
		ID:          r.ID,
	}
}

// NewTaskListModel builds the overflow list for day. selected indexes
// tasks; out of range selects nothing.
func NewTaskListModel(day string, tasks []task.Range, selected int) TaskListModel {
	lines := make([]TaskListLine, 0, len(tasks))
	for i, t := range tasks {
		dates := t.StartTime
		if t.EndTime != t.StartTime {
			dates += ".." + t.EndTime
		}
		desc := t.Description
		if desc == "" {
			desc = "Untitled"
		}
		lines = append(lines, TaskListLine{
			Dates:       dates,
			Description: desc,
			Selected:    i == selected,
		})
	}
	return TaskListModel{
		DateLabel: FormatDateLabel(day),
		Lines:     lines,
	}
}

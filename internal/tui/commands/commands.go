// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/export"
	"github.com/javiermolinar/taskcal/internal/scene"
	"github.com/javiermolinar/taskcal/internal/task"
	"github.com/javiermolinar/taskcal/internal/taskfile"
)

// TasksLoadedMsg is sent when the task file has been read.
type TasksLoadedMsg struct {
	Path  string
	Tasks []task.Range
}

// TasksSavedMsg is sent when the task file has been written.
type TasksSavedMsg struct {
	Path  string
	Count int
}

// ExportedMsg is sent when the month has been written as an image.
type ExportedMsg struct {
	Path string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// LoadTasks reads logical tasks from path.
func LoadTasks(path string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := taskfile.Load(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		return TasksLoadedMsg{Path: path, Tasks: tasks}
	}
}

// SaveTasks writes logical tasks to path.
func SaveTasks(path string, tasks []task.Range) tea.Cmd {
	return func() tea.Msg {
		if err := taskfile.Save(path, tasks); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving tasks: %w", err)}
		}
		return TasksSavedMsg{Path: path, Count: len(tasks)}
	}
}

// ExportPNG renders r into a PNG file.
func ExportPNG(path string, r scene.Renderer, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		if err := export.WriteFile(path, r, opts); err != nil {
			return ErrMsg{Err: fmt.Errorf("exporting: %w", err)}
		}
		return ExportedMsg{Path: path}
	}
}

// CopyRange copies a task's dates and description to the clipboard.
func CopyRange(r task.Range) tea.Cmd {
	return func() tea.Msg {
		text := FormatRange(r)
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied " + text}
	}
}

// FormatRange renders a task as "start..end description".
func FormatRange(r task.Range) string {
	dates := r.StartTime
	if r.EndTime != r.StartTime {
		dates += ".." + r.EndTime
	}
	if r.Description == "" {
		return dates
	}
	return dates + " " + r.Description
}

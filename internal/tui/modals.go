package tui

import (
	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/tui/view"
)

var helpEntries = []view.HelpEntry{
	{Keys: "n / p", Description: "Next or previous month (wheel too)"},
	{Keys: "t", Description: "Current month"},
	{Keys: "g", Description: "Go to a date"},
	{Keys: "/", Description: "Command prompt"},
	{Keys: "a", Description: "Add a task on the hovered day"},
	{Keys: "drag", Description: "Move a task to another day"},
	{Keys: "click", Description: "Select a task or open +N more"},
	{Keys: "right", Description: "Task details"},
	{Keys: "enter", Description: "Details of the selected task"},
	{Keys: "y", Description: "Copy the selected task"},
	{Keys: "ctrl+s", Description: "Save tasks"},
	{Keys: "e", Description: "Export the month as PNG"},
	{Keys: "q", Description: "Quit"},
}

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalTaskForm:
		return m.renderTaskFormModal()
	case ModalTaskDetail:
		return m.renderTaskDetailModal()
	case ModalTaskList:
		return m.renderTaskListModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

func (m Model) renderTaskFormModal() string {
	model := view.TaskFormModel{
		DateLabel: view.FormatDateLabel(m.formDay),
		Input:     m.formDesc.View(),
	}
	body := view.RenderTaskFormBody(model, m.styles.modalStyleSet().TaskFormStyles())
	footer := view.TaskFormFooter(m.styles.modalStyles())
	return view.RenderModalFrame("New Task", body, footer, m.styles.modalStyles())
}

func (m Model) renderTaskDetailModal() string {
	t, ok := m.ctrl.Task(m.detailID)
	if !ok {
		return ""
	}
	body := view.RenderTaskDetailBody(view.NewTaskDetailModel(t), m.styles.modalStyleSet().TaskDetailStyles())
	footer := view.TaskDetailFooter(m.ctrl.Mode() == calendar.ModeRead, m.styles.modalStyles())
	return view.RenderModalFrame("Task Details", body, footer, m.styles.modalStyles())
}

func (m Model) renderTaskListModal() string {
	model := view.NewTaskListModel(m.listDay, m.listTasks(), m.listCursor)
	body := view.RenderTaskListBody(model, m.styles.modalStyleSet().TaskListStyles())
	footer := view.TaskListFooter(m.styles.modalStyles())
	return view.RenderModalFrame("Tasks", body, footer, m.styles.modalStyles())
}

func (m Model) renderHelpModal() string {
	body := view.RenderHelpBody(helpEntries, m.styles.modalStyleSet().TaskDetailStyles())
	footer := view.HelpFooter(m.styles.modalStyles())
	return view.RenderModalFrame("Keys", body, footer, m.styles.modalStyles())
}

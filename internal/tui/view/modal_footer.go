package view

var (
	buttonAdd    = ModalButton{Key: "Enter", Label: "Add"}
	buttonOpen   = ModalButton{Key: "Enter", Label: "Open"}
	buttonCopy   = ModalButton{Key: "y", Label: "Copy"}
	buttonDelete = ModalButton{Key: "x", Label: "Delete"}
	buttonMove   = ModalButton{Key: "j/k", Label: "Move"}
	buttonCancel = ModalButton{Key: "Esc", Label: "Cancel"}
	buttonClose  = ModalButton{Key: "Esc", Label: "Close"}
)

// TaskFormFooter renders the footer for the add-task modal.
func TaskFormFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, buttonAdd, buttonCancel)
}

// TaskDetailFooter renders the footer for the task detail modal. Read-only
// calendars cannot delete.
func TaskDetailFooter(readOnly bool, styles ModalStyles) string {
	if readOnly {
		return RenderModalButtons(styles, buttonCopy, buttonClose)
	}
	return RenderModalButtons(styles, buttonCopy, buttonDelete, buttonClose)
}

// TaskListFooter renders the footer for the overflow list modal.
func TaskListFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, buttonOpen, buttonMove, buttonClose)
}

// HelpFooter renders the footer for the help modal.
func HelpFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, buttonClose)
}

package view

import "github.com/charmbracelet/lipgloss"

// ModalStyleSet groups modal styles to reduce call-site verbosity.
type ModalStyleSet struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	TagStyle          lipgloss.Style
	LabelStyle        lipgloss.Style
	SelectedStyle     lipgloss.Style
	InputStyle        lipgloss.Style
}

// TaskDetailStyles returns the modal styles needed for task details.
func (s ModalStyleSet) TaskDetailStyles() TaskDetailStyles {
	return TaskDetailStyles{
		BodyStyle:  s.BodyStyle,
		LabelStyle: s.LabelStyle,
		MetaStyle:  s.MetaStyle,
	}
}

// TaskListStyles returns the modal styles needed for the overflow list.
func (s ModalStyleSet) TaskListStyles() TaskListStyles {
	return TaskListStyles{
		BodyStyle:     s.BodyStyle,
		MetaStyle:     s.MetaStyle,
		SelectedStyle: s.SelectedStyle,
	}
}

// TaskFormStyles returns the modal styles needed for the add-task form.
func (s ModalStyleSet) TaskFormStyles() TaskFormStyles {
	return TaskFormStyles{
		TagStyle:          s.TagStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		InputStyle:        s.InputStyle,
	}
}

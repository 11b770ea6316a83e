package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/taskcal/internal/tui/theme"
	"github.com/javiermolinar/taskcal/internal/tui/view"
)

// Styles holds the lipgloss styles for the footer and modals, derived from
// a theme. The month grid itself is painted from the calendar palette.
type Styles struct {
	colorBg      lipgloss.Color
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color
	colorFooter  lipgloss.Color

	// Prompt box
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalSelectedStyle     lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorFooter = palette.FooterBg

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBackground(s.colorFooter).
		Background(palette.BgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorFooter).
		Background(palette.BgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(s.colorFooter).
		Bold(true).
		Padding(0, 1)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorFooter).
		Padding(0, 1)

	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(56).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true).
		Padding(0, 1)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Bold(true).
		Width(10).
		Background(modalBg)

	s.ModalSelectedStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Highlight).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(48)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(palette.BgSelection).
		Foreground(modal.Text).
		Padding(0, 2)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(palette.TextOnAccent).
		Padding(0, 2).
		Underline(true)

	return s
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}
}

func (s *Styles) modalStyleSet() view.ModalStyleSet {
	return view.ModalStyleSet{
		BodyStyle:         s.ModalBodyStyle,
		MetaStyle:         s.ModalMetaStyle,
		SectionTitleStyle: s.ModalSectionTitleStyle,
		TagStyle:          s.ModalTagStyle,
		LabelStyle:        s.ModalLabelStyle,
		SelectedStyle:     s.ModalSelectedStyle,
		InputStyle:        s.ModalInputStyle,
	}
}

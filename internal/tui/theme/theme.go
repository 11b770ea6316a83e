// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/taskcal/internal/calendar"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "paper"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Hovered day
	BgSelection string `toml:"bg_selection"` // Drop target while dragging
	Fg          string `toml:"fg"`           // Day numbers
	FgMuted     string `toml:"fg_muted"`     // Neighbouring months, weekdays
	Accent      string `toml:"accent"`       // Title, today, borders
	Warning     string `toml:"warning"`      // Errors in the status line

	// Calendar overrides
	Lunar   string `toml:"lunar"`
	BarText string `toml:"bar_text"`
	Plus    string `toml:"plus"`

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to paper if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// Calendar returns the colours the month view draws with.
func (t *Theme) Calendar() calendar.Palette {
	p := calendar.DefaultPalette()
	p.Background = t.Bg
	p.Title = t.Accent
	p.Weekday = t.FgMuted
	p.CellFill = t.Bg
	p.CellStroke = t.BgHighlight
	p.OtherStroke = t.BgSelection
	p.DayText = t.Fg
	p.OtherDayText = t.FgMuted
	p.TodayFill = t.Accent
	p.TodayText = chooseTextColor(t.Accent, t.Bg, t.Fg)
	p.LunarText = t.Lunar
	p.BarText = t.BarText
	p.ChipText = t.FgMuted
	p.HoverFill = t.BgHighlight
	p.HoverDragFill = t.BgSelection
	p.PlusStroke = t.Plus
	return p
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal palette.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      t.BaseBg,
		ModalBorder: t.ModalBorder,
		TextPrimary: t.TextPrimary,
		TextMuted:   t.TextMuted,
		Highlight:   t.Highlight,
	}
}

func (t *Theme) applyDefaults() {
	t.Lunar = coalesce(t.Lunar, t.FgMuted)
	// Task fills are pastel, so bar text stays dark on every theme.
	t.BarText = coalesce(t.BarText, "#1e1e2e")
	t.Plus = coalesce(t.Plus, t.Accent)

	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"paper", "mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

// Package tui provides the terminal user interface for taskcal.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/config"
	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/host"
	"github.com/javiermolinar/taskcal/internal/lunar"
	"github.com/javiermolinar/taskcal/internal/tui/commands"
	"github.com/javiermolinar/taskcal/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone       ModalType = iota
	ModalTaskForm             // Add a one-day task
	ModalTaskDetail           // View an existing task
	ModalTaskList             // Every task on an overflowing day
	ModalHelp
)

// Footer geometry: a prompt box (borders plus content) above the status
// and help lines.
const (
	promptBorderLines     = 2
	footerBaseLines       = 2
	promptMaxContentLines = 6
	footerHeight          = footerBaseLines + promptBorderLines + 1
)

// Model is the main TUI model.
type Model struct {
	config *config.Config
	now    func() time.Time
	lunar  lunar.Provider

	theme  *theme.Theme
	styles *Styles
	bg, fg colorful.Color

	// The controller and its event inbox are shared between copies of
	// the model.
	ctrl    *calendar.Controller
	inbox   *eventInbox
	capture *pointerCapture
	pointer geom.Point

	mode      Mode
	modalType ModalType

	// Add-task form
	formDay  string
	formDesc textinput.Model

	// Task detail and overflow list
	detailID   string
	listDay    string
	listIDs    []string
	listCursor int

	// selectedID is the last clicked task, the target of copy.
	selectedID string
	dirty      bool

	overlay OverlayModel
	prompt  textinput.Model

	width  int
	height int

	statusMsg  string
	statusTime time.Time

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow replaces the clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithLunar replaces the lunar provider chosen from the config.
func WithLunar(p lunar.Provider) ModelOption {
	return func(m *Model) { m.lunar = p }
}

// New creates a new TUI model. The calendar starts at the terminal
// metrics minimum size and is resized on the first WindowSizeMsg.
func New(cfg *config.Config, opts ...ModelOption) (*Model, error) {
	ti := textinput.New()
	ti.Placeholder = "/goto next friday"
	ti.Prompt = ""

	formDesc := textinput.New()
	formDesc.Placeholder = "Task description"
	formDesc.CharLimit = 256
	formDesc.Width = 44

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	formDesc.PlaceholderStyle = styles.ModalPlaceholderStyle
	formDesc.TextStyle = styles.ModalInputTextStyle
	formDesc.PromptStyle = styles.ModalInputTextStyle
	formDesc.Cursor.Style = styles.ModalInputCursorStyle
	formDesc.Cursor.TextStyle = styles.ModalInputTextStyle

	m := &Model{
		config:   cfg,
		now:      time.Now,
		theme:    t,
		styles:   styles,
		inbox:    &eventInbox{},
		capture:  &pointerCapture{},
		mode:     ModeNormal,
		prompt:   ti,
		formDesc: formDesc,
		overlay:  NewOverlayModel(),
	}
	if cfg.Calendar.Lunar {
		m.lunar = lunar.Chinese{}
	}
	for _, opt := range opts {
		opt(m)
	}

	m.bg, m.fg = paletteColors(t.Calendar())

	initDate, err := dateutil.ParseInput(cfg.Calendar.InitDate, m.now())
	if err != nil {
		return nil, fmt.Errorf("init date: %w", err)
	}
	metrics := m.metrics()
	ctrl, err := m.newController(metrics.MinWidth, metrics.MinHeight, initDate)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

func (m Model) metrics() calendar.Metrics {
	metrics := calendar.TerminalMetrics()
	metrics.Layout.MaxVisibleLanes = m.config.Calendar.MaxLanes
	return metrics
}

// newController mounts a calendar in the configured container, which is
// registered with the given size.
func (m Model) newController(w, h float64, initDate string) (*calendar.Controller, error) {
	mode, err := calendar.ParseMode(m.config.Calendar.Mode)
	if err != nil {
		return nil, err
	}
	metrics := m.metrics()
	palette := m.theme.Calendar()

	reg := host.NewRegistry()
	reg.Register(host.TerminalID, host.Fixed{W: w, H: h}, host.TerminalClass)

	ctrl, err := calendar.NewInContainer(reg, m.config.Calendar.Container, calendar.Options{
		Mode:         mode,
		InitDate:     initDate,
		IsAddTaskBtn: m.config.Calendar.AddTaskButton,
		Metrics:      &metrics,
		Palette:      &palette,
		Lunar:        m.lunar,
		Capturer:     m.capture,
		Logger:       logger(),
		Now:          m.now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating calendar: %w", err)
	}
	m.inbox.subscribe(ctrl)
	return ctrl, nil
}

// resize rebuilds the calendar for a new window size, keeping the tasks
// and the visible month.
func (m *Model) resize(width, height int) error {
	v := m.ctrl.View()
	tasks := m.ctrl.Tasks()
	w, h := max(width, 1), max(height-footerHeight, 1)
	ctrl, err := m.newController(float64(w), float64(h), dateutil.DayKey(v.Year, v.Month, 1))
	if err != nil {
		return err
	}
	if err := ctrl.SetTasks(tasks); err != nil {
		LogError("resize", err)
	}
	m.ctrl = ctrl
	m.capture.reset()
	return nil
}

// Controller returns the calendar the model drives.
func (m Model) Controller() *calendar.Controller { return m.ctrl }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.config.Tasks.Path == "" {
		return nil
	}
	return commands.LoadTasks(m.config.Tasks.Path)
}

// Run starts the TUI.
func Run(cfg *config.Config) error {
	return RunWithDebug(cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

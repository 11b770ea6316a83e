package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/host"
	"github.com/javiermolinar/taskcal/internal/lunar"
	"github.com/javiermolinar/taskcal/internal/taskfile"
	"github.com/javiermolinar/taskcal/internal/tui"
	"github.com/javiermolinar/taskcal/internal/tui/theme"
)

// pipeWidth and pipeHeight size the calendar when stdout is not a terminal.
const (
	pipeWidth  = 80
	pipeHeight = 42
)

func (a *App) showCmd() *cobra.Command {
	var date string
	var list bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a month",
		Long: `Print the month grid with its tasks and exit.

The date accepts a key or natural language and defaults to the
configured init date, or today.

Example:
  taskcal show --date "next month"
  taskcal show --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			} else {
				EnableColor()
			}

			c, err := a.monthView(a.showHost(), a.config.Calendar.Container, calendar.TerminalMetrics(), date,
				a.config.Calendar.Width, a.config.Calendar.Height)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				v := c.View()
				PrintMonthTasks(out, c.Title(), MonthTasks(c.Tasks(), v.Year, v.Month), termWidth())
				return nil
			}
			fmt.Fprintln(out, tui.RenderStage(c.Renderer(), c.Palette()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Month to show (date key or natural language)")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the month's tasks instead of drawing the grid")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// showHost returns the terminal as the calendar host, or a fixed box under
// the same selector when stdout is redirected.
func (a *App) showHost() host.Host {
	if a.screen != nil {
		return a.screen
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		return host.NewTerminalHost(fd)
	}
	return fixedScreen(pipeWidth, pipeHeight)
}

// fixedScreen registers a w x h box under the terminal selectors.
func fixedScreen(w, h float64) host.Host {
	reg := host.NewRegistry()
	reg.Register(host.TerminalID, host.Fixed{W: w, H: h}, host.TerminalClass)
	return reg
}

// monthView mounts a read-only calendar for date in container, loaded with
// the configured task file. A zero w or h takes the container's size.
func (a *App) monthView(h host.Host, container string, metrics calendar.Metrics, date string, w, hgt float64) (*calendar.Controller, error) {
	cfg := a.config
	if date == "" {
		date = cfg.Calendar.InitDate
	}
	initDate, err := dateutil.ParseInput(date, time.Now())
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	palette := t.Calendar()
	metrics.Layout.MaxVisibleLanes = cfg.Calendar.MaxLanes

	var provider lunar.Provider
	if cfg.Calendar.Lunar {
		provider = lunar.Chinese{}
	}

	c, err := calendar.NewInContainer(h, container, calendar.Options{
		Mode:     calendar.ModeRead,
		InitDate: initDate,
		Width:    w,
		Height:   hgt,
		Metrics:  &metrics,
		Palette:  &palette,
		Lunar:    provider,
	})
	if err != nil {
		return nil, fmt.Errorf("creating calendar: %w", err)
	}

	tasks, err := taskfile.Load(cfg.Tasks.Path)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if err := c.SetTasks(tasks); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return c, nil
}

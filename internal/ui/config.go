package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskcal/internal/config"
	"github.com/javiermolinar/taskcal/internal/host"
	"github.com/javiermolinar/taskcal/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  taskcal config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(w io.Writer) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, fileErr := os.Stat(configPath); os.IsNotExist(fileErr) {
		fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	printConfig(w, cfg)

	edit := false
	if err := survey.AskOne(&survey.Confirm{
		Message: "Would you like to edit the configuration?",
	}, &edit); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if !edit {
		return nil
	}

	answers := answersFrom(cfg)
	if err := survey.Ask(configQuestions(cfg), &answers); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if err := answers.apply(cfg); err != nil {
		return err
	}

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

// configAnswers holds the editable fields as the prompts return them.
type configAnswers struct {
	Mode      string `survey:"mode"`
	Container string `survey:"container"`
	InitDate  string `survey:"init_date"`
	MaxLanes  string `survey:"max_lanes"`
	AddButton bool   `survey:"add_button"`
	Lunar     bool   `survey:"lunar"`
	TasksPath string `survey:"tasks_path"`
	Export    string `survey:"export_path"`
	Theme     string `survey:"theme"`
}

func answersFrom(cfg *config.Config) configAnswers {
	return configAnswers{
		Mode:      cfg.Calendar.Mode,
		Container: cfg.Calendar.Container,
		InitDate:  cfg.Calendar.InitDate,
		MaxLanes:  strconv.Itoa(cfg.Calendar.MaxLanes),
		AddButton: cfg.Calendar.AddTaskButton,
		Lunar:     cfg.Calendar.Lunar,
		TasksPath: cfg.Tasks.Path,
		Export:    cfg.Export.Path,
		Theme:     cfg.UI.Theme,
	}
}

func configQuestions(cfg *config.Config) []*survey.Question {
	return []*survey.Question{
		{
			Name: "mode",
			Prompt: &survey.Select{
				Message: "Calendar mode:",
				Options: []string{"edit", "read"},
				Default: cfg.Calendar.Mode,
			},
		},
		{
			Name:     "container",
			Prompt:   &survey.Input{Message: "Container selector:", Default: cfg.Calendar.Container},
			Validate: validateSelector,
		},
		{
			Name:   "init_date",
			Prompt: &survey.Input{Message: "Initial date (empty for today):", Default: cfg.Calendar.InitDate},
		},
		{
			Name:     "max_lanes",
			Prompt:   &survey.Input{Message: "Visible lanes per week:", Default: strconv.Itoa(cfg.Calendar.MaxLanes)},
			Validate: validateLanes,
		},
		{
			Name:   "add_button",
			Prompt: &survey.Confirm{Message: "Show the add task button?", Default: cfg.Calendar.AddTaskButton},
		},
		{
			Name:   "lunar",
			Prompt: &survey.Confirm{Message: "Show lunar dates?", Default: cfg.Calendar.Lunar},
		},
		{
			Name:     "tasks_path",
			Prompt:   &survey.Input{Message: "Task file:", Default: cfg.Tasks.Path},
			Validate: survey.Required,
		},
		{
			Name:   "export_path",
			Prompt: &survey.Input{Message: "PNG export path:", Default: cfg.Export.Path},
		},
		{
			Name: "theme",
			Prompt: &survey.Select{
				Message: "UI theme:",
				Options: theme.Available(),
				Default: cfg.UI.Theme,
			},
		},
	}
}

func validateSelector(ans interface{}) error {
	s, _ := ans.(string)
	_, err := host.ParseSelector(s)
	return err
}

func validateLanes(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of at least 1")
	}
	return nil
}

// apply copies the answers into cfg.
func (ans configAnswers) apply(cfg *config.Config) error {
	lanes, err := strconv.Atoi(strings.TrimSpace(ans.MaxLanes))
	if err != nil {
		return fmt.Errorf("max lanes: %w", err)
	}
	if !theme.IsAvailable(ans.Theme) {
		return fmt.Errorf("unknown theme %q", ans.Theme)
	}
	cfg.Calendar.Mode = ans.Mode
	cfg.Calendar.Container = strings.TrimSpace(ans.Container)
	cfg.Calendar.InitDate = strings.TrimSpace(ans.InitDate)
	cfg.Calendar.MaxLanes = lanes
	cfg.Calendar.AddTaskButton = ans.AddButton
	cfg.Calendar.Lunar = ans.Lunar
	cfg.Tasks.Path = strings.TrimSpace(ans.TasksPath)
	cfg.Export.Path = strings.TrimSpace(ans.Export)
	cfg.UI.Theme = ans.Theme
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[calendar]")
	fmt.Fprintf(w, "  mode              = %s\n", cfg.Calendar.Mode)
	fmt.Fprintf(w, "  container         = %s\n", cfg.Calendar.Container)
	if cfg.Calendar.InitDate != "" {
		fmt.Fprintf(w, "  init_date         = %s\n", cfg.Calendar.InitDate)
	}
	fmt.Fprintf(w, "  max_visible_lanes = %d\n", cfg.Calendar.MaxLanes)
	fmt.Fprintf(w, "  add_task_button   = %t\n", cfg.Calendar.AddTaskButton)
	fmt.Fprintf(w, "  lunar             = %t\n", cfg.Calendar.Lunar)
	fmt.Fprintln(w, "\n[tasks]")
	fmt.Fprintf(w, "  path              = %s\n", cfg.Tasks.Path)
	fmt.Fprintln(w, "\n[export]")
	fmt.Fprintf(w, "  path              = %s\n", cfg.Export.Path)
	fmt.Fprintf(w, "  size              = %gx%g @%gx\n", cfg.Export.Width, cfg.Export.Height, cfg.Export.PixelRatio)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme             = %s\n", cfg.UI.Theme)
}

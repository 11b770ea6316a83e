// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/taskcal/internal/host"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Tasks    TasksConfig    `toml:"tasks"`
	Export   ExportConfig   `toml:"export"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds the month view settings.
type CalendarConfig struct {
	Mode          string  `toml:"mode"`      // "edit" or "read"
	Container     string  `toml:"container"` // "#id", ".class" or a bare id
	Width         float64 `toml:"width"`     // cells for `show`; 0 means the container width
	Height        float64 `toml:"height"`
	InitDate      string  `toml:"init_date"` // "2024-10-01" or "next month"
	AddTaskButton bool    `toml:"add_task_button"`
	MaxLanes      int     `toml:"max_visible_lanes"`
	Lunar         bool    `toml:"lunar"`
}

// TasksConfig holds the task file location.
type TasksConfig struct {
	Path string `toml:"path"` // .yaml, .yml, .toml, .json or .ics
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	Path       string  `toml:"path"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	PixelRatio float64 `toml:"pixel_ratio"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "paper", "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			Mode:          "edit",
			Container:     "#terminal",
			AddTaskButton: true,
			MaxLanes:      3,
			Lunar:         false,
		},
		Tasks: TasksConfig{
			Path: defaultTasksPath(),
		},
		Export: ExportConfig{
			Path:       "calendar.png",
			Width:      780,
			Height:     730,
			PixelRatio: 2,
		},
		UI: UIConfig{
			Theme: "paper",
		},
	}
}

// defaultTasksPath returns the default task file path.
func defaultTasksPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tasks.yaml"
	}
	return filepath.Join(home, ".local", "share", "taskcal", "tasks.yaml")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Tasks.Path = expandPath(cfg.Tasks.Path)
	cfg.Export.Path = expandPath(cfg.Export.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TASKCAL_MODE"); v != "" {
		cfg.Calendar.Mode = v
	}
	if v := os.Getenv("TASKCAL_INIT_DATE"); v != "" {
		cfg.Calendar.InitDate = v
	}
	if v := os.Getenv("TASKCAL_MAX_LANES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKCAL_MAX_LANES: %w", err)
		}
		cfg.Calendar.MaxLanes = n
	}
	if v := os.Getenv("TASKCAL_TASKS"); v != "" {
		cfg.Tasks.Path = v
	}
	if v := os.Getenv("TASKCAL_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Calendar.Mode {
	case "edit", "read":
	default:
		return fmt.Errorf("mode must be 'read' or 'edit', got %q", c.Calendar.Mode)
	}
	if _, err := host.ParseSelector(c.Calendar.Container); err != nil {
		return fmt.Errorf("container: %w", err)
	}
	if c.Calendar.Width < 0 || c.Calendar.Height < 0 {
		return errors.New("width and height cannot be negative")
	}
	if c.Calendar.MaxLanes < 1 {
		return errors.New("max_visible_lanes must be at least 1")
	}
	if c.Tasks.Path == "" {
		return errors.New("tasks path must be set")
	}
	if c.Export.PixelRatio <= 0 {
		return errors.New("pixel_ratio must be positive")
	}
	if c.Export.Width < 0 || c.Export.Height < 0 {
		return errors.New("export width and height cannot be negative")
	}
	if c.UI.Theme == "" {
		return errors.New("theme must be set")
	}
	return nil
}

// IsReadOnly returns true if the calendar is configured in read mode.
func (c *Config) IsReadOnly() bool {
	return c.Calendar.Mode == "read"
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

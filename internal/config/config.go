// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/dragdrop"
	"github.com/javiermolinar/crewgrid/internal/layout"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Layout  LayoutConfig  `toml:"layout"`
	Drag    DragConfig    `toml:"drag"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`

	path string // file the config was loaded from
}

// GridConfig holds the initial zoom and window of the scheduler grid.
type GridConfig struct {
	TimeGranularity int    `toml:"time_granularity"` // minutes per column: 30, 60, 120, 240, 360
	DateSpan        int    `toml:"date_span"`        // visible days, 1-14
	StartDate       string `toml:"start_date"`       // YYYY-MM-DD, empty means today
}

// LayoutConfig holds task block sizes.
type LayoutConfig struct {
	MinWidth       float64 `toml:"min_width"`
	RowHeight      float64 `toml:"row_height"`
	MaxVisible     int     `toml:"max_visible"` // tasks per month cell before "+N more"
	DaySlotMinutes int     `toml:"day_slot_minutes"`
}

// DragConfig holds gesture snapping rules, in minutes.
type DragConfig struct {
	MoveSnap   int `toml:"move_snap"`
	ResizeSnap int `toml:"resize_snap"`
	MinSegment int `toml:"min_segment"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
	File   string `toml:"file"`   // optional, appended to
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
	validThemes     = []string{"mocha", "macchiato", "frappe", "latte", "light"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			TimeGranularity: 60,
			DateSpan:        6,
		},
		Layout: LayoutConfig{
			MinWidth:       60,
			RowHeight:      28,
			MaxVisible:     3,
			DaySlotMinutes: 30,
		},
		Drag: DragConfig{
			MoveSnap:   15,
			ResizeSnap: 5,
			MinSegment: 5,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "crewgrid.db"
	}
	return filepath.Join(home, ".local", "share", "crewgrid", "crewgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "crewgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.path = path
	return cfg, nil
}

// Path returns the file the config was loaded from, or "" for a config
// built in code.
func (c *Config) Path() string {
	return c.path
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
	ints := []struct {
		key string
		dst *int
	}{
		{"CREWGRID_TIME_GRANULARITY", &cfg.Grid.TimeGranularity},
		{"CREWGRID_DATE_SPAN", &cfg.Grid.DateSpan},
		{"CREWGRID_MOVE_SNAP", &cfg.Drag.MoveSnap},
		{"CREWGRID_RESIZE_SNAP", &cfg.Drag.ResizeSnap},
	}
	for _, o := range ints {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.key, v)
		}
		*o.dst = n
	}

	if v := os.Getenv("CREWGRID_START_DATE"); v != "" {
		cfg.Grid.StartDate = v
	}
	if v := os.Getenv("CREWGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CREWGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CREWGRID_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CREWGRID_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("CREWGRID_UI_THEME"); v != "" {
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
	if err := calendar.ValidateGranularity(c.Grid.TimeGranularity); err != nil {
		return fmt.Errorf("time_granularity: %w", err)
	}
	if c.Grid.DateSpan < calendar.MinDateSpan || c.Grid.DateSpan > calendar.MaxDateSpan {
		return fmt.Errorf("date_span must be between %d and %d, got %d", calendar.MinDateSpan, calendar.MaxDateSpan, c.Grid.DateSpan)
	}
	if c.Grid.StartDate != "" {
		if _, err := dateutil.ParseStrict(c.Grid.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}

	if c.Layout.MinWidth <= 0 || c.Layout.RowHeight <= 0 {
		return errors.New("min_width and row_height must be positive")
	}
	if c.Layout.MaxVisible <= 0 {
		return errors.New("max_visible must be positive")
	}
	if err := calendar.ValidateGranularity(c.Layout.DaySlotMinutes); err != nil {
		return fmt.Errorf("day_slot_minutes: %w", err)
	}

	if c.Drag.MoveSnap <= 0 || c.Drag.ResizeSnap <= 0 || c.Drag.MinSegment <= 0 {
		return errors.New("move_snap, resize_snap and min_segment must be positive")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	if !slices.Contains(validThemes, strings.ToLower(c.UI.Theme)) {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

// StartDate returns the configured grid anchor, or today.
func (c *Config) StartDate() time.Time {
	d, err := dateutil.ParseDate(c.Grid.StartDate)
	if err != nil {
		return dateutil.Today()
	}
	return d
}

// LayoutOptions converts the layout section into engine options.
func (c *Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.MinWidth = c.Layout.MinWidth
	opts.RowHeight = c.Layout.RowHeight
	opts.MaxVisible = c.Layout.MaxVisible
	opts.DaySlotMinutes = c.Layout.DaySlotMinutes
	return opts
}

// DragOptions converts the drag section into resolver options.
func (c *Config) DragOptions() dragdrop.Options {
	return dragdrop.Options{
		MoveSnap:   c.Drag.MoveSnap,
		ResizeSnap: c.Drag.ResizeSnap,
		MinSegment: c.Drag.MinSegment,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
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

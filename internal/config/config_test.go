package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/crewgrid/internal/task"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.TimeGranularity != 60 {
		t.Errorf("expected time_granularity 60, got %d", cfg.Grid.TimeGranularity)
	}
	if cfg.Grid.DateSpan != 6 {
		t.Errorf("expected date_span 6, got %d", cfg.Grid.DateSpan)
	}
	if cfg.Drag.MoveSnap != 15 || cfg.Drag.ResizeSnap != 5 || cfg.Drag.MinSegment != 5 {
		t.Errorf("unexpected drag defaults: %+v", cfg.Drag)
	}
	if cfg.Layout.MaxVisible != 3 {
		t.Errorf("expected max_visible 3, got %d", cfg.Layout.MaxVisible)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Grid.TimeGranularity != 60 {
		t.Errorf("expected default time_granularity, got %d", cfg.Grid.TimeGranularity)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
time_granularity = 120
date_span = 10
start_date = "2025-06-20"

[layout]
min_width = 40.0
row_height = 24.0
max_visible = 4
day_slot_minutes = 30

[drag]
move_snap = 30

[storage]
db_path = "/tmp/test.db"

[log]
level = "debug"
format = "json"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.TimeGranularity != 120 || cfg.Grid.DateSpan != 10 {
		t.Errorf("unexpected grid: %+v", cfg.Grid)
	}
	if want := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC); !cfg.StartDate().Equal(want) {
		t.Errorf("StartDate() = %v, want %v", cfg.StartDate(), want)
	}
	if cfg.Layout.MinWidth != 40 || cfg.Layout.MaxVisible != 4 {
		t.Errorf("unexpected layout: %+v", cfg.Layout)
	}
	// Unset keys in a section keep their defaults
	if cfg.Drag.MoveSnap != 30 || cfg.Drag.ResizeSnap != 5 {
		t.Errorf("unexpected drag: %+v", cfg.Drag)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.UI.Theme != "latte" {
		t.Errorf("unexpected log/ui: %+v %+v", cfg.Log, cfg.UI)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
time_granularity = 30
date_span = 4

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("CREWGRID_TIME_GRANULARITY", "240")
	t.Setenv("CREWGRID_LOG_LEVEL", "warn")
	t.Setenv("CREWGRID_DB_PATH", "/tmp/env.db")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Grid.TimeGranularity != 240 {
		t.Errorf("expected time_granularity 240 from env, got %d", cfg.Grid.TimeGranularity)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	// File value should be kept when no env override
	if cfg.Grid.DateSpan != 4 {
		t.Errorf("expected date_span 4 from file, got %d", cfg.Grid.DateSpan)
	}
	// Env should override default
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn from env, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_EnvNotANumber(t *testing.T) {
	t.Setenv("CREWGRID_DATE_SPAN", "six")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "CREWGRID_DATE_SPAN") {
		t.Errorf("expected error naming CREWGRID_DATE_SPAN, got %v", err)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unsupported granularity", func(c *Config) { c.Grid.TimeGranularity = 45 }},
		{"zero span", func(c *Config) { c.Grid.DateSpan = 0 }},
		{"span too wide", func(c *Config) { c.Grid.DateSpan = 15 }},
		{"bad start date", func(c *Config) { c.Grid.StartDate = "20/06/2025" }},
		{"zero min width", func(c *Config) { c.Layout.MinWidth = 0 }},
		{"zero max visible", func(c *Config) { c.Layout.MaxVisible = 0 }},
		{"unsupported day slot", func(c *Config) { c.Layout.DaySlotMinutes = 15 }},
		{"zero move snap", func(c *Config) { c.Drag.MoveSnap = 0 }},
		{"negative min segment", func(c *Config) { c.Drag.MinSegment = -5 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "dracula" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_GranularityError(t *testing.T) {
	cfg := Default()
	cfg.Grid.TimeGranularity = 90

	if err := cfg.Validate(); !errors.Is(err, task.ErrInvalidGranularity) {
		t.Errorf("got error %v, want %v", err, task.ErrInvalidGranularity)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Grid.TimeGranularity = 30
	cfg.Grid.DateSpan = 14
	cfg.Layout.RowHeight = 32
	cfg.UI.Theme = "frappe"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Grid.TimeGranularity != 30 || loaded.Grid.DateSpan != 14 {
		t.Errorf("unexpected grid after round trip: %+v", loaded.Grid)
	}
	if loaded.Layout.RowHeight != 32 {
		t.Errorf("expected row_height 32, got %v", loaded.Layout.RowHeight)
	}
	if loaded.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", loaded.UI.Theme)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.MinWidth = 12
	cfg.Drag.MoveSnap = 30

	lo := cfg.LayoutOptions()
	if lo.MinWidth != 12 || lo.RowHeight != 28 || lo.DaySlotHeight != 60 {
		t.Errorf("LayoutOptions() = %+v", lo)
	}
	do := cfg.DragOptions()
	if do.MoveSnap != 30 || do.ResizeSnap != 5 {
		t.Errorf("DragOptions() = %+v", do)
	}
}

func TestStartDate_DefaultsToToday(t *testing.T) {
	cfg := Default()
	now := time.Now()
	got := cfg.StartDate()
	if got.Year() != now.Year() || got.YearDay() != now.YearDay() {
		t.Errorf("StartDate() = %v, want today", got)
	}
}

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  crewgrid config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVar(&path, "path", config.DefaultConfigPath(), "Config file to edit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Grid.TimeGranularity = promptInt(reader, out, "Time granularity (30, 60, 120, 240, 360)", cfg.Grid.TimeGranularity)
	cfg.Grid.DateSpan = promptInt(reader, out, "Visible days (1-14)", cfg.Grid.DateSpan)
	cfg.Grid.StartDate = promptValue(reader, out, "Start date (empty for today)", cfg.Grid.StartDate)
	cfg.Drag.MoveSnap = promptInt(reader, out, "Move snap minutes", cfg.Drag.MoveSnap)
	cfg.Drag.ResizeSnap = promptInt(reader, out, "Resize snap minutes", cfg.Drag.ResizeSnap)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  time_granularity = %d\n", cfg.Grid.TimeGranularity)
	fmt.Fprintf(w, "  date_span        = %d\n", cfg.Grid.DateSpan)
	if cfg.Grid.StartDate != "" {
		fmt.Fprintf(w, "  start_date       = %s\n", cfg.Grid.StartDate)
	}
	fmt.Fprintln(w, "\n[layout]")
	fmt.Fprintf(w, "  min_width        = %g\n", cfg.Layout.MinWidth)
	fmt.Fprintf(w, "  row_height       = %g\n", cfg.Layout.RowHeight)
	fmt.Fprintf(w, "  max_visible      = %d\n", cfg.Layout.MaxVisible)
	fmt.Fprintf(w, "  day_slot_minutes = %d\n", cfg.Layout.DaySlotMinutes)
	fmt.Fprintln(w, "\n[drag]")
	fmt.Fprintf(w, "  move_snap        = %d\n", cfg.Drag.MoveSnap)
	fmt.Fprintf(w, "  resize_snap      = %d\n", cfg.Drag.ResizeSnap)
	fmt.Fprintf(w, "  min_segment      = %d\n", cfg.Drag.MinSegment)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format           = %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file             = %s\n", cfg.Log.File)
	}
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(w, "  %q is not a number\n", value)
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}

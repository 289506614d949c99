package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/logging"
	"github.com/javiermolinar/crewgrid/internal/zoom"
)

// Grid output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func (a *App) monthCmd() *cobra.Command {
	var (
		date       string
		member     string
		prev, next bool
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month calendar",
		Long: `Show the six-week calendar around a month. Each day lists its first
tasks in start order, untimed tasks first, then "+N more".`,
		Example: `  crewgrid month
  crewgrid month --date=2025-06-01 --member=Jeff
  crewgrid month --next`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			anchor, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			anchor = step(anchor, prev, next, calendar.ShiftMonth)
			first, last := monthRange(anchor)
			tasks, err := a.repo.ListTasksInRange(cmd.Context(), first, last)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			renderMonth(cmd.OutOrStdout(), charEngine(a.config.Layout.MaxVisible), anchor, dateutil.Today(), tasks, member)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the month (YYYY-MM-DD, today, tomorrow or a weekday)")
	cmd.Flags().StringVar(&member, "member", "", "Only tasks assigned to this member")
	cmd.Flags().BoolVar(&prev, "prev", false, "Show the month before --date")
	cmd.Flags().BoolVar(&next, "next", false, "Show the month after --date")
	cmd.MarkFlagsMutuallyExclusive("prev", "next")

	return cmd
}

func (a *App) gridCmd() *cobra.Command {
	var (
		start       string
		span        int
		granularity int
		week        bool
		asJSON      bool
		format      string
		screen      float64
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the team resource grid",
		Long: `Show one row per team member across a window of days. Multi-day tasks
run as bars across the top of a row; single-day tasks are placed along
each day's time axis and stacked when they share a day.

--format=json or --format=yaml prints the layout in pixels for a screen of
--screen-width instead. --json is short for --format=json.`,
		Example: `  crewgrid grid --start=2025-06-20 --span=7
  crewgrid grid --granularity=120 --json --screen-width=1920
  crewgrid grid --format=yaml
  crewgrid grid --week --start=2025-06-18`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if asJSON {
				format = formatJSON
			}
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q, want text, json or yaml", format)
			}
			anchor := a.config.StartDate()
			if start != "" {
				d, err := dateutil.ParseStrict(start)
				if err != nil {
					return fmt.Errorf("start: %w", err)
				}
				anchor = d
			}
			if week {
				anchor, _ = dateutil.WeekRange(anchor)
			}
			zc, err := zoom.NewWithDefaults(anchor, a.config.Grid.TimeGranularity, a.config.Grid.DateSpan)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("granularity") {
				if err := zc.SetGranularity(granularity); err != nil {
					return err
				}
			}
			if week {
				span = 7
			}
			if week || cmd.Flags().Changed("span") {
				if err := zc.SetDateSpan(span); err != nil {
					return err
				}
			}
			state := zc.State()
			window := state.Window()

			roster, err := a.loadRoster(ctx)
			if err != nil {
				return err
			}
			tasks, err := a.repo.ListTasksInRange(ctx, window[0], window[len(window)-1])
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			if format != formatText {
				settings := zc.Settings(screen)
				res := layout.New(a.config.LayoutOptions()).LayoutWindow(tasks, roster.Rows(), window, settings.CellWidth)
				logging.Warnings(a.log, res.Warnings)
				return writeGridDoc(cmd.OutOrStdout(), format, buildGridDoc(state, settings, res))
			}

			days, err := calendar.BuildWindowDays(window, state.Granularity, dateutil.Today())
			if err != nil {
				return err
			}
			cellChars := gridCellWidth(a.columns(), len(window))
			res := charEngine(a.config.Layout.MaxVisible).LayoutWindow(tasks, roster.Rows(), window, float64(cellChars))
			logging.Warnings(a.log, res.Warnings)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", formatHeader(calendar.WindowTitle(window)),
				formatMuted(fmt.Sprintf("%d days, %d min columns", state.DateSpan, state.Granularity)))
			renderGrid(out, res, days, cellChars)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First visible date (YYYY-MM-DD, default: config or today)")
	cmd.Flags().IntVar(&span, "span", 0, "Visible days, 1-14 (default: config)")
	cmd.Flags().IntVar(&granularity, "granularity", 0, "Minutes per time column: 30, 60, 120, 240 or 360 (default: config)")
	cmd.Flags().BoolVar(&week, "week", false, "Show the Monday to Sunday week around --start")
	cmd.MarkFlagsMutuallyExclusive("week", "span")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pixel layout as JSON")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	cmd.Flags().Float64Var(&screen, "screen-width", 1920, "Screen width in pixels for json and yaml output")

	return cmd
}

func (a *App) dayCmd() *cobra.Command {
	var (
		date       string
		member     string
		prev, next bool
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show a single day in time slots",
		Example: `  crewgrid day
  crewgrid day --date=2025-06-20 --member=Lizzie
  crewgrid day --date=friday`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			d = step(d, prev, next, calendar.ShiftDay)
			tasks, err := a.repo.ListTasksInRange(cmd.Context(), d, d)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			eng := layout.New(layout.Options{
				DaySlotMinutes: a.config.Layout.DaySlotMinutes,
				DaySlotHeight:  1,
				DayMinHeight:   1,
			})
			return renderDay(cmd.OutOrStdout(), eng, d, tasks, member)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to show (YYYY-MM-DD, today, tomorrow or a weekday)")
	cmd.Flags().StringVar(&member, "member", "", "Only tasks assigned to this member")
	cmd.Flags().BoolVar(&prev, "prev", false, "Show the day before --date")
	cmd.Flags().BoolVar(&next, "next", false, "Show the day after --date")
	cmd.MarkFlagsMutuallyExclusive("prev", "next")

	return cmd
}

type gridDoc struct {
	Start       string       `json:"start" yaml:"start"`
	Span        int          `json:"span" yaml:"span"`
	Granularity int          `json:"granularity" yaml:"granularity"`
	CellWidth   float64      `json:"cell_width" yaml:"cell_width"`
	AllLabels   bool         `json:"show_all_labels" yaml:"show_all_labels"`
	Rows        []rowDoc     `json:"rows" yaml:"rows"`
	Warnings    []warningDoc `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type rowDoc struct {
	Key    string    `json:"key" yaml:"key"`
	Label  string    `json:"label" yaml:"label"`
	Height float64   `json:"height" yaml:"height"`
	Tasks  []rectDoc `json:"tasks" yaml:"tasks"`
}

type rectDoc struct {
	TaskID       string  `json:"task_id" yaml:"task_id"`
	Title        string  `json:"title" yaml:"title"`
	Date         string  `json:"date" yaml:"date"`
	Left         float64 `json:"left" yaml:"left"`
	Width        float64 `json:"width" yaml:"width"`
	Top          float64 `json:"top" yaml:"top"`
	Height       float64 `json:"height" yaml:"height"`
	Timed        bool    `json:"timed" yaml:"timed"`
	SpanDays     int     `json:"span_days,omitempty" yaml:"span_days,omitempty"`
	ClippedStart bool    `json:"clipped_start,omitempty" yaml:"clipped_start,omitempty"`
	ClippedEnd   bool    `json:"clipped_end,omitempty" yaml:"clipped_end,omitempty"`
}

type warningDoc struct {
	TaskID string `json:"task_id" yaml:"task_id"`
	Error  string `json:"error" yaml:"error"`
}

// buildGridDoc flattens a layout into window-relative pixel rects.
func buildGridDoc(state zoom.State, settings zoom.Settings, res layout.Result) gridDoc {
	doc := gridDoc{
		Start:       dateutil.FormatDate(state.Anchor),
		Span:        state.DateSpan,
		Granularity: state.Granularity,
		CellWidth:   settings.CellWidth,
		AllLabels:   settings.ShowAllLabels,
		Rows:        make([]rowDoc, 0, len(res.Rows)),
	}
	windowWidth := settings.CellWidth * float64(len(res.Window))

	for _, rl := range res.Rows {
		row := rowDoc{Key: rl.Row.Key, Label: rl.Row.Label, Height: rl.Height, Tasks: []rectDoc{}}
		for _, bar := range rl.Bars {
			r := bar.Rect.ToPixels(windowWidth)
			row.Tasks = append(row.Tasks, rectDoc{
				TaskID:       bar.Task.ID,
				Title:        bar.Task.Title,
				Date:         dateutil.FormatDate(res.Window[bar.StartIndex]),
				Left:         r.Left,
				Width:        r.Width,
				Top:          r.Top,
				Height:       r.Height,
				Timed:        bar.Task.IsTimed(),
				SpanDays:     bar.SpanDays,
				ClippedStart: bar.ClippedStart,
				ClippedEnd:   bar.ClippedEnd,
			})
		}
		for i, cell := range rl.Cells {
			offset := float64(i) * settings.CellWidth
			for _, item := range cell.Items {
				row.Tasks = append(row.Tasks, rectDoc{
					TaskID: item.Task.ID,
					Title:  item.Task.Title,
					Date:   dateutil.FormatDate(cell.Date),
					Left:   offset + item.Rect.Left,
					Width:  item.Rect.Width,
					Top:    item.Rect.Top,
					Height: item.Rect.Height,
					Timed:  item.Timed,
				})
			}
		}
		doc.Rows = append(doc.Rows, row)
	}
	for _, warn := range res.Warnings {
		doc.Warnings = append(doc.Warnings, warningDoc{TaskID: warn.TaskID, Error: warn.Err.Error()})
	}

	return doc
}

// writeGridDoc encodes doc as JSON or YAML.
func writeGridDoc(w io.Writer, format string, doc gridDoc) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// step shifts date one unit back or forward when prev or next is set.
func step(date time.Time, prev, next bool, shift func(time.Time, calendar.Direction) time.Time) time.Time {
	switch {
	case prev:
		return shift(date, calendar.Prev)
	case next:
		return shift(date, calendar.Next)
	}
	return date
}

// monthRange returns the first and last dates of the month grid shown for
// anchor.
func monthRange(anchor time.Time) (time.Time, time.Time) {
	days := calendar.MonthGrid(anchor)
	return days[0].Date, days[len(days)-1].Date
}

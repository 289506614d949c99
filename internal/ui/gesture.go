package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/dragdrop"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// minuteAxis is a virtual time axis one unit per minute, so pointer
// positions in headless gestures are plain minute offsets.
var minuteAxis = dragdrop.Axis{Length: task.MinutesPerDay}

func (a *App) moveCmd() *cobra.Command {
	var (
		toDate   string
		toTime   string
		assignee string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a task to another cell or time",
		Long: `Move a task as if it were dragged on the grid.

The new start time snaps to the configured move step and the task keeps
its duration. A multi-day task keeps its length in days. An untimed task
given --to-time becomes a one-hour block.`,
		Example: `  crewgrid move 3f2a9c1b --to-date=2025-06-21 --to-time=13:40
  crewgrid move 3f2a9c1b --assignee=Lizzie`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}

			target := dragdrop.Target{Kind: dragdrop.TargetGridCell, Assignee: t.Assignee, Date: t.StartDate}
			if assignee != "" {
				target.Assignee = assignee
			}
			if toDate != "" {
				if target.Date, err = dateutil.ParseStrict(toDate); err != nil {
					return fmt.Errorf("to-date: %w", err)
				}
			}
			var toMinutes *int
			if toTime != "" {
				m, err := task.TimeToMinutes(toTime)
				if err != nil {
					return fmt.Errorf("to-time: %w", err)
				}
				toMinutes = &m
			}

			u, err := a.resolveMove(t, target, toMinutes)
			if err != nil {
				return err
			}
			return a.applyGesture(cmd, t, u, dryRun)
		},
	}

	cmd.Flags().StringVar(&toDate, "to-date", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toTime, "to-time", "", "Target start time (HH:MM), snapped")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Target team member")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result without saving it")

	return cmd
}

// resolveMove runs a move gesture from the task's start to toMinutes and
// drops it on target. Untimed tasks get their time from a day-view drop.
func (a *App) resolveMove(t *task.Task, target dragdrop.Target, toMinutes *int) (task.Update, error) {
	resolver := dragdrop.NewResolver(a.config.DragOptions())
	shape := t.Shape()

	origin := dragdrop.Point{X: float64(shape.StartMinutes)}
	drop := origin
	if toMinutes != nil {
		drop.X = float64(*toMinutes)
	}

	drag, err := resolver.Begin(t, dragdrop.Move, origin, minuteAxis)
	if err != nil {
		return task.Update{}, err
	}
	u, err := drag.Complete(drop, target)
	if err != nil {
		return task.Update{}, err
	}
	if toMinutes == nil || shape.Timing == task.Timed {
		return u, nil
	}

	placed, err := resolver.Begin(t, dragdrop.Move, origin, minuteAxis)
	if err != nil {
		return task.Update{}, err
	}
	timeOnly, err := placed.Complete(drop, dragdrop.Target{Kind: dragdrop.TargetDayView})
	if err != nil {
		return task.Update{}, err
	}
	u.StartTime, u.EndTime = timeOnly.StartTime, timeOnly.EndTime
	return u, nil
}

func (a *App) resizeCmd() *cobra.Command {
	var (
		edge    string
		minutes int
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "resize [id]",
		Short: "Move the start or end edge of a task",
		Long: `Resize a single-day timed task as if an edge were dragged.

--minutes is the drag distance, negative to move the edge earlier. It
snaps to the configured resize step and never leaves the task shorter than
the minimum segment.`,
		Example: `  crewgrid resize 3f2a9c1b --edge=end --minutes=30
  crewgrid resize 3f2a9c1b --edge=start --minutes=-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind dragdrop.Kind
			switch strings.ToLower(edge) {
			case "start":
				kind = dragdrop.ResizeStart
			case "end":
				kind = dragdrop.ResizeEnd
			default:
				return fmt.Errorf("edge must be start or end, got %q", edge)
			}

			t, err := a.resolveTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			drag, err := dragdrop.NewResolver(a.config.DragOptions()).Begin(t, kind, dragdrop.Point{}, minuteAxis)
			if err != nil {
				return err
			}
			u, err := drag.Complete(dragdrop.Point{X: float64(minutes)}, dragdrop.Target{})
			if err != nil {
				return err
			}
			return a.applyGesture(cmd, t, u, dryRun)
		},
	}

	cmd.Flags().StringVar(&edge, "edge", "end", "Edge to drag: start or end")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Drag distance in minutes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result without saving it")

	return cmd
}

// applyGesture saves a gesture's update unless it changes nothing or this
// is a dry run.
func (a *App) applyGesture(cmd *cobra.Command, before *task.Task, u task.Update, dryRun bool) error {
	out := cmd.OutOrStdout()
	after := u.Apply(before)
	if err := after.Validate(); err != nil {
		return fmt.Errorf("resulting task is invalid: %w", err)
	}
	if !u.Changes(before) {
		fmt.Fprintln(out, "Task already there, nothing to do.")
		return nil
	}

	printChange(out, before, after)
	if dryRun {
		fmt.Fprintln(out, formatMuted("(dry run, not saved)"))
		return nil
	}

	if _, err := a.repo.UpdateTask(cmd.Context(), u); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("saving task: %w", err)
	}
	a.log.Debug().Str("task_id", before.ID).Strs("fields", u.Fields()).Msg("gesture applied")
	return nil
}

func printChange(w io.Writer, before, after *task.Task) {
	describe := func(t *task.Task) string {
		return fmt.Sprintf("@%s %s %s", t.Assignee, dateRange(t), timeRange(t))
	}
	fmt.Fprintf(w, "%s %s\n  %s\n→ %s\n", shortID(before.ID), before.Title,
		formatMuted(describe(before)), formatOK(describe(after)))
}

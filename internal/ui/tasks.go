package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
)

var errAmbiguousID = errors.New("task id prefix matches several tasks")

func (a *App) addCmd() *cobra.Command {
	var in task.Input

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a task for a team member.

A task without --start is untimed. A task with --start but no --end lasts
one hour. --end-date makes it a multi-day task.`,
		Example: `  crewgrid add "Site survey" --assignee=Lamar --date=2025-06-20 --start=09:00 --end=11:30
  crewgrid add "Offsite" --assignee=Jeff --date=2025-06-23 --end-date=2025-06-25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			t, err := task.New(in)
			if err != nil {
				return err
			}

			if err := a.repo.CreateTask(cmd.Context(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s @%s %s %s\n",
				shortID(t.ID), t.Title, t.Assignee, dateRange(t), timeRange(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Assignee, "assignee", "", "Team member name (required)")
	cmd.Flags().StringVar(&in.Date, "date", "", "Start date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&in.EndDate, "end-date", "", "Last date of a multi-day task (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Longer description")
	cmd.Flags().StringVar(&in.Color, "color", task.DefaultColor, "Color tag")

	_ = cmd.MarkFlagRequired("assignee")

	return cmd
}

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		member    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a date range",
		Long: `List all tasks covering a date range, grouped by day.

If no dates are specified, lists today's tasks.
If only --start is specified, lists tasks for that single day.
Multi-day tasks are listed under every day they cover.`,
		Example: `  crewgrid list
  crewgrid list --start=2025-06-20 --end=2025-06-26 --member=Lizzie`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			tasks, err := a.repo.ListTasksInRange(cmd.Context(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			found := false
			for i := range dateRange.Days() {
				date := dateutil.AddDays(dateRange.Start, i)
				day := layout.SortByStart(layout.TasksForDate(tasks, date, member))
				if len(day) == 0 {
					continue
				}
				if found {
					fmt.Fprintln(out)
				}
				found = true
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(date.Format("Mon 2006-01-02")))
				for _, t := range day {
					printTaskRow(out, t, a.columns())
				}
			}
			if !found {
				fmt.Fprintln(out, "No tasks found in the specified date range.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringVar(&member, "member", "", "Only tasks assigned to this member")

	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var (
		title, description, assignee string
		date, endDate                string
		start, end, color            string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of a task",
		Long: `Change one or more fields of a task. Only the flags given are updated.
Pass --start="" to make a task untimed, --end-date="" to make it single-day.`,
		Example: `  crewgrid edit 3f2a9c1b --title="Site survey (north)" --end=12:00`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}

			u := task.Update{TaskID: t.ID}
			flags := cmd.Flags()
			setString := func(name string, v string, dst **string) {
				if flags.Changed(name) {
					*dst = &v
				}
			}
			setString("title", title, &u.Title)
			setString("description", description, &u.Description)
			setString("assignee", assignee, &u.Assignee)
			setString("start", start, &u.StartTime)
			setString("end", end, &u.EndTime)
			setString("color", color, &u.Color)
			if flags.Changed("start") && start == "" && !flags.Changed("end") {
				u.EndTime = &start
			}
			if flags.Changed("date") {
				d, err := dateutil.ParseStrict(date)
				if err != nil {
					return fmt.Errorf("date: %w", err)
				}
				u.Date = &d
			}
			if flags.Changed("end-date") {
				d := t.StartDate
				if u.Date != nil {
					d = *u.Date
				}
				if endDate != "" {
					if d, err = dateutil.ParseStrict(endDate); err != nil {
						return fmt.Errorf("end date: %w", err)
					}
				}
				u.EndDate = &d
			}
			if u.IsEmpty() {
				return errors.New("nothing to update: pass at least one field flag")
			}

			updated, err := a.repo.UpdateTask(ctx, u)
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s (%s)\n", shortID(updated.ID), strings.Join(u.Fields(), ", "))
			printTaskRow(cmd.OutOrStdout(), updated, a.columns())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee")
	cmd.Flags().StringVar(&date, "date", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "New last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&color, "color", "", "New color tag")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := a.resolveTask(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}

// resolveTask finds a task by full id or by a unique id prefix.
func (a *App) resolveTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := a.repo.GetTask(ctx, id)
	if err == nil || !errors.Is(err, task.ErrTaskNotFound) {
		return t, err
	}

	all, listErr := a.repo.ListTasks(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("listing tasks: %w", listErr)
	}
	var match *task.Task
	for _, c := range all {
		if !strings.HasPrefix(c.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", errAmbiguousID, id)
		}
		match = c
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

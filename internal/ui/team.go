package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/zoom"
)

func (a *App) teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team roster",
	}
	cmd.AddCommand(a.teamListCmd(), a.teamAddCmd(), a.teamReorderCmd())
	return cmd
}

func (a *App) teamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members with their task load for the coming days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			roster, err := a.loadRoster(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if roster.Len() == 0 {
				fmt.Fprintln(out, "No team members yet. Add one with 'crewgrid team add'.")
				return nil
			}

			window := zoom.State{DateSpan: a.config.Grid.DateSpan, Anchor: a.config.StartDate()}.Window()
			tasks, err := a.repo.ListTasksInRange(ctx, window[0], window[len(window)-1])
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			header := pad("", 4) + pad("Member", 20)
			for _, d := range window {
				header += pad(d.Format("Mon 2"), 8)
			}
			fmt.Fprintln(out, formatHeader(header))

			dups := make(map[string]bool)
			for _, n := range roster.DuplicateNames() {
				dups[n] = true
			}
			for i, g := range roster.Groups() {
				name := g.Name
				if dups[name] {
					name = formatWarn(name + " (dup)")
				}
				line := pad(strconv.Itoa(i+1)+".", 4) + pad(name, 20)
				for _, n := range g.DailyCounts(tasks, window) {
					cell := strconv.Itoa(n)
					if n == 0 {
						cell = formatMuted("-")
					}
					line += pad(cell, 8)
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, formatMuted("Tasks per day from "+dateutil.FormatDate(window[0])))
			return nil
		},
	}
}

func (a *App) teamAddCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Add a team member",
		Example: `  crewgrid team add "Nadia" --email=nadia@example.com`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.repo.AddMember(cmd.Context(), args[0], email)
			if err != nil {
				return fmt.Errorf("adding member: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s at position %d\n", m.Name, m.Position+1)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	return cmd
}

func (a *App) teamReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "reorder [from] [to]",
		Short:   "Move a team member to another position",
		Long:    "Move the member at position FROM to position TO, as numbered by 'crewgrid team list'.",
		Example: `  crewgrid team reorder 4 1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("from must be a number: %w", err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("to must be a number: %w", err)
			}
			if err := a.repo.ReorderMember(cmd.Context(), from-1, to-1); err != nil {
				return fmt.Errorf("reordering team: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved member %d to position %d\n", from, to)
			return nil
		},
	}
}

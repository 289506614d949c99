package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/logging"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/team"
	"github.com/javiermolinar/crewgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   task.Repository
	config *config.Config
	log    zerolog.Logger
	root   *cobra.Command
	debug  bool // Enable debug logging
	width  int  // Terminal columns, 0 to detect
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo task.Repository, cfg *config.Config, log zerolog.Logger) *App {
	a := &App{repo: repo, config: cfg, log: log}

	a.root = &cobra.Command{
		Use:   "crewgrid",
		Short: "A team task scheduler for the terminal",
		Long: `crewgrid schedules team tasks on a zoomable time grid.

Tasks belong to a team member, span one or more days and may carry a time
of day. View them as a month calendar, a resource grid or a single day,
and move or resize them from the command line or the interactive timeline.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.debug {
				a.log = a.log.Level(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().IntVar(&a.width, "width", 0, "Output width in columns (default: terminal width)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.teamCmd())
	a.root.AddCommand(a.tuiCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crewgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func (a *App) runTUI(ctx context.Context) error {
	return tui.Run(ctx, a.repo, a.config, a.log)
}

// columns returns the output width.
func (a *App) columns() int {
	if a.width > 0 {
		return a.width
	}
	return termWidth()
}

// loadRoster builds the resource rows from the stored team, warning about
// names that would match the same tasks twice.
func (a *App) loadRoster(ctx context.Context) (*team.Roster, error) {
	members, err := a.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team: %w", err)
	}
	r := team.FromMembers(members)
	logging.DuplicateAssignees(a.log, r.DuplicateNames())
	return r, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests and embedding.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetIO redirects command input and output.
func (a *App) SetIO(in io.Reader, out io.Writer) {
	a.root.SetIn(in)
	a.root.SetOut(out)
	a.root.SetErr(out)
}

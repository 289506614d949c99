// Package tui provides the interactive resource grid for crewgrid.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/dragdrop"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/team"
	"github.com/javiermolinar/crewgrid/internal/tui/commands"
	"github.com/javiermolinar/crewgrid/internal/tui/theme"
	"github.com/javiermolinar/crewgrid/internal/zoom"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // A move or resize gesture is in progress
)

// Cursor is the selected cell and the task selected inside it.
type Cursor struct {
	Line int // Index into gridLines
	Day  int // Index into the date window
	Item int // Index into the cell's tasks
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx    context.Context
	repo   task.Repository
	config *config.Config
	log    zerolog.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   KeyMap
	help   help.Model

	// Scheduler state
	zoom     *zoom.Controller
	roster   *team.Roster
	engine   *layout.Engine
	resolver *dragdrop.Resolver
	tasks    []*task.Task
	result   layout.Result
	gesture  *gesture

	cursor  Cursor
	mode    Mode
	loading bool

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
	statusErr bool

	copyText func(string) error
	now      func() time.Time
	configs  <-chan *config.Config
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClipboard replaces the system clipboard used by the copy key.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.copyText = write
	}
}

// WithClock replaces the clock used to find today.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithConfigUpdates applies each config received on updates while the TUI
// runs.
func WithConfigUpdates(updates <-chan *config.Config) ModelOption {
	return func(m *Model) {
		m.configs = updates
	}
}

// New creates a new TUI model.
func New(ctx context.Context, repo task.Repository, cfg *config.Config, log zerolog.Logger, opts ...ModelOption) (*Model, error) {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	zc, err := zoom.NewWithDefaults(cfg.StartDate(), cfg.Grid.TimeGranularity, cfg.Grid.DateSpan)
	if err != nil {
		return nil, fmt.Errorf("zoom: %w", err)
	}

	m := &Model{
		ctx:      ctx,
		repo:     repo,
		config:   cfg,
		log:      log.With().Str("component", "tui").Logger(),
		theme:    t,
		styles:   NewStyles(t),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		zoom:     zc,
		roster:   team.FromMembers(nil),
		engine:   gridEngine(cfg.Layout.MaxVisible),
		resolver: dragdrop.NewResolver(cfg.DragOptions()),
		loading:  true,
		width:    defaultWidth,
		height:   defaultHeight,
		copyText: clipboard.WriteAll,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.relayout()
	return m, nil
}

// Init loads the roster and the first window.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.LoadRoster(m.ctx, m.repo), m.loadWindow()}
	if m.configs != nil {
		cmds = append(cmds, commands.WaitForConfig(m.configs))
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI. When cfg was loaded from a file, edits to that file
// are applied while the TUI runs.
func Run(ctx context.Context, repo task.Repository, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var opts []ModelOption
	if cfg.Path() != "" {
		updates := make(chan *config.Config)
		opts = append(opts, WithConfigUpdates(updates))
		go func() {
			err := config.Watch(ctx, cfg, log, func(c *config.Config) {
				select {
				case updates <- c:
				case <-ctx.Done():
				}
			})
			if err != nil {
				log.Debug().Err(err).Msg("config changes will not be applied")
			}
		}()
	}

	model, err := New(ctx, repo, cfg, log, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// applyConfig switches to a reloaded config. The zoom and window stay as
// the user left them.
func (m *Model) applyConfig(cfg *config.Config) error {
	if cfg.UI.Theme != m.config.UI.Theme {
		t, err := theme.Load(cfg.UI.Theme)
		if err != nil {
			return err
		}
		m.theme = t
		m.styles = NewStyles(t)
	}
	m.config = cfg
	m.engine = gridEngine(cfg.Layout.MaxVisible)
	m.resolver = dragdrop.NewResolver(cfg.DragOptions())
	m.relayout()
	return nil
}

func (m Model) today() time.Time {
	return dateutil.DateOf(m.now())
}

func (m Model) window() []time.Time {
	return m.zoom.State().Window()
}

func (m Model) loadWindow() tea.Cmd {
	w := m.window()
	return commands.LoadWindow(m.ctx, m.repo, w[0], w[len(w)-1], m.zoom.Generation())
}

// setStatus shows a message in the footer until it is cleared.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	return commands.ClearStatusAfter(commands.StatusTimeout)
}

// afterZoom re-lays out the grid when the zoom state changed and loads the
// new window.
func (m *Model) afterZoom(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	m.cursor.Day = min(max(m.cursor.Day, 0), m.zoom.State().DateSpan-1)
	m.cursor.Item = 0
	m.loading = true
	m.relayout()
	m.log.Debug().
		Uint64("generation", m.zoom.Generation()).
		Int("granularity", m.zoom.State().Granularity).
		Int("span", m.zoom.State().DateSpan).
		Msg("zoom changed")
	return m.loadWindow()
}

// navigate moves the cursor by one day, shifting the window at its edges.
func (m *Model) navigate(dir calendar.Direction) tea.Cmd {
	state := m.zoom.State()
	next := m.cursor.Day + int(dir)
	if next >= 0 && next < state.DateSpan {
		m.cursor.Day = next
		m.cursor.Item = 0
		return nil
	}
	step := calendar.WindowStep(state.DateSpan)
	m.zoom.Navigate(dir)
	if dir == calendar.Prev {
		m.cursor.Day = step - 1
	} else {
		m.cursor.Day = state.DateSpan - step
	}
	return m.afterZoom(true)
}

// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// StatusTimeout is how long a status message stays in the footer.
const StatusTimeout = 4 * time.Second

// WindowLoadedMsg is sent when the tasks of a date window are loaded.
// Generation is the zoom generation the load was issued for, so stale
// loads can be dropped.
type WindowLoadedMsg struct {
	Tasks      []*task.Task
	Generation uint64
}

// RosterLoadedMsg is sent when the team members are loaded.
type RosterLoadedMsg struct {
	Members []task.Member
}

// TaskSavedMsg is sent when a gesture's update has been stored.
type TaskSavedMsg struct {
	Task   *task.Task
	Fields []string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// LoadWindow loads the tasks intersecting [start, end].
func LoadWindow(ctx context.Context, repo task.Repository, start, end time.Time, generation uint64) tea.Cmd {
	return func() tea.Msg {
		tasks, err := repo.ListTasksInRange(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WindowLoadedMsg{Tasks: tasks, Generation: generation}
	}
}

// LoadRoster loads the team members in display order.
func LoadRoster(ctx context.Context, repo task.Repository) tea.Cmd {
	return func() tea.Msg {
		members, err := repo.ListMembers(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RosterLoadedMsg{Members: members}
	}
}

// SaveUpdate stores a partial task update.
func SaveUpdate(ctx context.Context, repo task.Repository, u task.Update) tea.Cmd {
	return func() tea.Msg {
		t, err := repo.UpdateTask(ctx, u)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TaskSavedMsg{Task: t, Fields: u.Fields()}
	}
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ReorderMember stores a new roster position for a member.
func ReorderMember(ctx context.Context, repo task.Repository, from, to int, name string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ReorderMember(ctx, from, to); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Moved %s to position %d", name, to+1)}
	}
}

// WaitForConfig waits for the next reloaded config. It must be issued again
// after each ConfigReloadedMsg to keep listening.
func WaitForConfig(updates <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

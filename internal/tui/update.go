package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/crewgrid/internal/logging"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/team"
	"github.com/javiermolinar/crewgrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case commands.RosterLoadedMsg:
		m.roster = team.FromMembers(msg.Members)
		logging.DuplicateAssignees(m.log, m.roster.DuplicateNames())
		m.relayout()
		return m, nil

	case commands.WindowLoadedMsg:
		if msg.Generation != m.zoom.Generation() {
			// A newer window is already loading.
			return m, nil
		}
		m.tasks = msg.Tasks
		m.loading = false
		m.relayout()
		logging.Warnings(m.log, m.result.Warnings)
		return m, nil

	case commands.TaskSavedMsg:
		m.log.Info().Str("task_id", msg.Task.ID).Strs("fields", msg.Fields).Msg("task updated")
		cmd := m.setStatus("Saved "+msg.Task.Title, false)
		return m, tea.Batch(cmd, m.loadWindow())

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case commands.ConfigReloadedMsg:
		var next tea.Cmd
		if m.configs != nil {
			next = commands.WaitForConfig(m.configs)
		}
		if err := m.applyConfig(msg.Config); err != nil {
			m.log.Error().Err(err).Msg("config reload failed")
			return m, tea.Batch(m.setStatus(err.Error(), true), next)
		}
		return m, tea.Batch(m.setStatus("Config reloaded", false), next)

	case commands.ErrMsg:
		m.log.Error().Err(msg.Err).Msg("command failed")
		m.loading = false
		if errors.Is(msg.Err, task.ErrTaskNotFound) {
			return m, tea.Batch(m.setStatus("Task was deleted elsewhere", true), m.loadWindow())
		}
		return m, m.setStatus(msg.Err.Error(), true)
	}

	return m, nil
}

package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/team"
	"github.com/javiermolinar/crewgrid/internal/tui/commands"
)

// cycleTask selects the next or previous task in the cursor cell.
func (m *Model) cycleTask(dir int) {
	n := len(m.cellTasks(m.cursor.Line, m.cursor.Day))
	if n == 0 {
		return
	}
	m.cursor.Item = (m.cursor.Item + dir + n) % n
}

func (m Model) groupIndex(id string) int {
	return slices.IndexFunc(m.roster.Groups(), func(g team.GroupView) bool { return g.ID == id })
}

// focusGroup puts the cursor on the first line of a group.
func (m *Model) focusGroup(id string) {
	for i, l := range m.lines() {
		if l.Group.ID == id {
			m.cursor.Line = i
			break
		}
	}
	m.clampCursor()
}

// toggleGroup collapses or expands the member under the cursor.
func (m *Model) toggleGroup() tea.Cmd {
	l, ok := m.currentLine()
	if !ok {
		return nil
	}
	if _, err := m.roster.ToggleExpanded(l.Group.ID); err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.relayout()
	m.focusGroup(l.Group.ID)
	return nil
}

// addRow gives the member under the cursor another row.
func (m *Model) addRow() tea.Cmd {
	l, ok := m.currentLine()
	if !ok {
		return nil
	}
	if !l.Group.Expanded {
		return m.setStatus("Expand "+l.Group.Name+" first", true)
	}
	in, err := m.roster.AddInstance(l.Group.ID)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.relayout()
	return m.setStatus("Added row "+in.InstanceName, false)
}

// removeRow drops the row under the cursor, keeping each member's last row.
func (m *Model) removeRow() tea.Cmd {
	l, ok := m.currentLine()
	if !ok || l.Row == nil {
		return nil
	}
	err := m.roster.RemoveInstance(l.Group.ID, l.Row.Row.Key)
	if errors.Is(err, team.ErrLastInstance) {
		return m.setStatus(l.Group.Name+" needs at least one row", true)
	}
	if errors.Is(err, team.ErrFirstInstance) {
		return m.setStatus(l.Row.Row.Label+" holds "+l.Group.Name+"'s own tasks", true)
	}
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.relayout()
	return m.setStatus("Removed row "+l.Row.Row.Label, false)
}

// moveMember moves the member under the cursor up or down the roster and
// stores the new order.
func (m *Model) moveMember(dir int) tea.Cmd {
	l, ok := m.currentLine()
	if !ok {
		return nil
	}
	from := m.groupIndex(l.Group.ID)
	to := from + dir
	if from < 0 || to < 0 || to >= m.roster.Len() {
		return nil
	}
	if err := m.roster.Move(from, to); err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.relayout()
	m.focusGroup(l.Group.ID)
	return commands.ReorderMember(m.ctx, m.repo, from, to, l.Group.Name)
}

// agenda formats one member's day as plain text.
func agenda(tasks []*task.Task, assignee string, date string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s\n", assignee, date)
	for _, t := range tasks {
		when := "all day    "
		if s := t.Shape(); s.Timing == task.Timed {
			when = task.ClampMinutesToTime(s.StartMinutes) + "-" + task.ClampMinutesToTime(s.EndMinutes)
		}
		fmt.Fprintf(&b, "%s %s\n", when, t.Title)
	}
	return b.String()
}

// copyAgenda copies the cursor member's tasks for the cursor date.
func (m *Model) copyAgenda() tea.Cmd {
	l, ok := m.currentLine()
	if !ok || m.cursor.Day >= len(m.result.Window) {
		return nil
	}
	date := m.result.Window[m.cursor.Day]
	tasks := layout.SortByStart(layout.TasksForDate(m.tasks, date, l.Assignee()))
	if len(tasks) == 0 {
		return m.setStatus("Nothing to copy", false)
	}
	if err := m.copyText(agenda(tasks, l.Assignee(), date.Format("Mon Jan 2 2006"))); err != nil {
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied %d tasks", len(tasks)), false)
}

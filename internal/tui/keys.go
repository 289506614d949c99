package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/dragdrop"
)

// KeyMap holds every key binding of the grid.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	NextJob key.Binding
	PrevJob key.Binding

	PrevWindow key.Binding
	NextWindow key.Binding
	Today      key.Binding

	ZoomTimeIn  key.Binding
	ZoomTimeOut key.Binding
	ZoomDateIn  key.Binding
	ZoomDateOut key.Binding
	ZoomReset   key.Binding

	Move        key.Binding
	ResizeStart key.Binding
	ResizeEnd   key.Binding
	Earlier     key.Binding
	Later       key.Binding
	EarlierStep key.Binding
	LaterStep   key.Binding
	TargetRow   key.Binding
	TargetDay   key.Binding
	Drop        key.Binding
	Cancel      key.Binding

	Collapse   key.Binding
	AddRow     key.Binding
	RemoveRow  key.Binding
	MemberUp   key.Binding
	MemberDown key.Binding
	CopyAgenda key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev day")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next day")),
		NextJob: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next task")),
		PrevJob: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev task")),

		PrevWindow: key.NewBinding(key.WithKeys("H", "pgup"), key.WithHelp("H", "earlier")),
		NextWindow: key.NewBinding(key.WithKeys("L", "pgdown"), key.WithHelp("L", "later")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),

		ZoomTimeIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "finer time")),
		ZoomTimeOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "coarser time")),
		ZoomDateIn:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "fewer days")),
		ZoomDateOut: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "more days")),
		ZoomReset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),

		Move:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		ResizeStart: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resize start")),
		ResizeEnd:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "resize end")),
		Earlier:     key.NewBinding(key.WithKeys("left", ","), key.WithHelp(",", "earlier")),
		Later:       key.NewBinding(key.WithKeys("right", "."), key.WithHelp(".", "later")),
		EarlierStep: key.NewBinding(key.WithKeys("shift+left", "<"), key.WithHelp("<", "column earlier")),
		LaterStep:   key.NewBinding(key.WithKeys("shift+right", ">"), key.WithHelp(">", "column later")),
		TargetRow:   key.NewBinding(key.WithKeys("k", "j", "up", "down"), key.WithHelp("j/k", "member")),
		TargetDay:   key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "day")),
		Drop:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Collapse:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "collapse member")),
		AddRow:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		RemoveRow:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove row")),
		MemberUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "member up")),
		MemberDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "member down")),
		CopyAgenda: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.ResizeEnd, k.ZoomTimeIn, k.ZoomDateIn, k.CopyAgenda, k.ToggleHelp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextJob, k.PrevJob},
		{k.PrevWindow, k.NextWindow, k.Today, k.ZoomTimeIn, k.ZoomTimeOut, k.ZoomDateIn, k.ZoomDateOut, k.ZoomReset},
		{k.Move, k.ResizeStart, k.ResizeEnd, k.Collapse, k.AddRow, k.RemoveRow, k.MemberUp, k.MemberDown},
		{k.CopyAgenda, k.ToggleHelp, k.Quit},
	}
}

// dragHelp is the footer help while a gesture is in progress.
type dragHelp KeyMap

func (k dragHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.TargetRow, k.TargetDay, k.Earlier, k.Later, k.EarlierStep, k.LaterStep, k.Drop, k.Cancel}
}

func (k dragHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeDrag {
		return m.handleDragKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys when no gesture is in progress.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		m.cursor.Line--
		m.cursor.Item = 0
		m.clampCursor()
	case key.Matches(msg, k.Down):
		m.cursor.Line++
		m.cursor.Item = 0
		m.clampCursor()
	case key.Matches(msg, k.Left):
		cmd = m.navigate(calendar.Prev)
	case key.Matches(msg, k.Right):
		cmd = m.navigate(calendar.Next)
	case key.Matches(msg, k.NextJob):
		m.cycleTask(1)
	case key.Matches(msg, k.PrevJob):
		m.cycleTask(-1)

	case key.Matches(msg, k.PrevWindow):
		m.zoom.Navigate(calendar.Prev)
		cmd = m.afterZoom(true)
	case key.Matches(msg, k.NextWindow):
		m.zoom.Navigate(calendar.Next)
		cmd = m.afterZoom(true)
	case key.Matches(msg, k.Today):
		m.cursor.Day = 0
		cmd = m.afterZoom(m.zoom.SetAnchor(m.today()))

	case key.Matches(msg, k.ZoomTimeIn):
		cmd = m.afterZoom(m.zoom.ZoomTimeIn())
	case key.Matches(msg, k.ZoomTimeOut):
		cmd = m.afterZoom(m.zoom.ZoomTimeOut())
	case key.Matches(msg, k.ZoomDateIn):
		cmd = m.afterZoom(m.zoom.ZoomDateIn())
	case key.Matches(msg, k.ZoomDateOut):
		cmd = m.afterZoom(m.zoom.ZoomDateOut())
	case key.Matches(msg, k.ZoomReset):
		cmd = m.afterZoom(m.zoom.Reset())

	case key.Matches(msg, k.Move):
		cmd = m.beginGesture(dragdrop.Move)
	case key.Matches(msg, k.ResizeStart):
		cmd = m.beginGesture(dragdrop.ResizeStart)
	case key.Matches(msg, k.ResizeEnd):
		cmd = m.beginGesture(dragdrop.ResizeEnd)

	case key.Matches(msg, k.Collapse):
		cmd = m.toggleGroup()
	case key.Matches(msg, k.AddRow):
		cmd = m.addRow()
	case key.Matches(msg, k.RemoveRow):
		cmd = m.removeRow()
	case key.Matches(msg, k.MemberUp):
		cmd = m.moveMember(-1)
	case key.Matches(msg, k.MemberDown):
		cmd = m.moveMember(1)

	case key.Matches(msg, k.CopyAgenda):
		cmd = m.copyAgenda()
	case key.Matches(msg, k.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, cmd
}

// handleDragKeys handles keys while a gesture is in progress.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	snap := m.config.DragOptions().MoveSnap
	if m.gesture.kind() != dragdrop.Move {
		snap = m.config.DragOptions().ResizeSnap
	}
	column := m.zoom.State().Granularity

	switch {
	case key.Matches(msg, k.Cancel):
		return m, m.cancelGesture()
	case key.Matches(msg, k.Drop):
		return m, m.drop()
	case key.Matches(msg, k.EarlierStep):
		m.nudge(-column)
	case key.Matches(msg, k.LaterStep):
		m.nudge(column)
	case key.Matches(msg, k.Earlier):
		m.nudge(-snap)
	case key.Matches(msg, k.Later):
		m.nudge(snap)
	case key.Matches(msg, k.TargetRow):
		if key.Matches(msg, k.Up) {
			m.retarget(-1, 0)
		} else {
			m.retarget(1, 0)
		}
	case key.Matches(msg, k.TargetDay):
		if msg.String() == "h" {
			m.retarget(0, -1)
		} else {
			m.retarget(0, 1)
		}
	}
	return m, nil
}

package tui

import (
	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/team"
	"github.com/javiermolinar/crewgrid/internal/zoom"
)

const (
	defaultWidth  = 120
	defaultHeight = 30
	labelWidth    = 16
	minCellWidth  = 10
	// chromeLines are the header and footer lines around the rows.
	chromeLines = 6
	// pixelsPerColumn is the screen width one terminal column stands for
	// when sizing date cells with the zoom settings.
	pixelsPerColumn = 16
	// sidebarPixels is the label column width the zoom settings reserve.
	sidebarPixels = 250
)

// gridEngine lays tasks out in terminal cells: one column per axis unit and
// one line per stacked task.
func gridEngine(maxVisible int) *layout.Engine {
	return layout.New(layout.Options{
		MinWidth:       6,
		RowHeight:      1,
		UntimedHeight:  1,
		MaxVisible:     maxVisible,
		DaySlotMinutes: calendar.DayViewSlotMinutes,
		DaySlotHeight:  1,
		DayMinHeight:   1,
	})
}

// gridLine is one line group of the grid: an instance row of an expanded
// group, or the summary line of a collapsed one.
type gridLine struct {
	Group team.GroupView
	Row   *layout.RowLayout // nil for a collapsed group
}

// Assignee returns the assignee of the tasks on this line. A collapsed
// group stands for its member.
func (l gridLine) Assignee() string {
	if l.Row == nil {
		return l.Group.Name
	}
	return l.Row.Row.Assignee
}

// Label returns the text of the line's label column.
func (l gridLine) Label() string {
	if l.Row == nil {
		return "▸ " + l.Group.Name
	}
	return l.Row.Row.Label
}

// Height returns how many terminal lines the line takes.
func (l gridLine) Height() int {
	if l.Row == nil {
		return 1
	}
	return max(1, int(l.Row.Height+0.5))
}

// settings returns the zoom rendering hints for the terminal width.
func (m Model) settings() zoom.Settings {
	screen := float64(max(m.width-labelWidth, 1)*pixelsPerColumn + sidebarPixels)
	return m.zoom.Settings(screen)
}

// cellWidth is the width of one date cell in terminal columns. Finer time
// granularities get wider cells and the grid scrolls sideways.
func (m Model) cellWidth() int {
	return max(minCellWidth, int(m.settings().CellWidth/pixelsPerColumn))
}

// viewport returns the first grid column shown and how many fit, keeping
// the active cell in view.
func (m Model) viewport() (offset, visible int) {
	visible = max(m.width-labelWidth, 1)
	cw := m.cellWidth()
	_, day := m.activeCell()
	start := day * cw
	if cw >= visible {
		return start, visible
	}
	return max(0, start+cw-visible), visible
}

// displayTasks returns the tasks to lay out. During a gesture the preview
// of the dragged task is added next to its original.
func (m Model) displayTasks() []*task.Task {
	if m.gesture == nil || m.gesture.preview == nil {
		return m.tasks
	}
	out := make([]*task.Task, 0, len(m.tasks)+1)
	out = append(out, m.tasks...)
	return append(out, m.gesture.preview)
}

// relayout recomputes the grid layout for the current zoom, roster, tasks
// and gesture.
func (m *Model) relayout() {
	m.result = m.engine.LayoutWindow(m.displayTasks(), m.roster.Rows(), m.window(), float64(m.cellWidth()))
	m.clampCursor()
}

// lines returns the grid lines in roster order.
func (m Model) lines() []gridLine {
	byKey := make(map[string]*layout.RowLayout, len(m.result.Rows))
	for i := range m.result.Rows {
		byKey[m.result.Rows[i].Row.Key] = &m.result.Rows[i]
	}

	var out []gridLine
	for _, g := range m.roster.Groups() {
		if !g.Expanded {
			out = append(out, gridLine{Group: g})
			continue
		}
		for _, in := range g.Instances {
			out = append(out, gridLine{Group: g, Row: byKey[in.ID]})
		}
	}
	return out
}

func (m *Model) clampCursor() {
	n := len(m.lines())
	m.cursor.Line = min(max(m.cursor.Line, 0), max(n-1, 0))
	m.cursor.Day = min(max(m.cursor.Day, 0), m.zoom.State().DateSpan-1)
	if items := m.cellTasks(m.cursor.Line, m.cursor.Day); m.cursor.Item >= len(items) {
		m.cursor.Item = 0
	}
}

// cellTasks returns the tasks shown in a cell: bars covering the date
// first, then the cell's own tasks in stacking order. Gesture previews are
// left out.
func (m Model) cellTasks(line, day int) []*task.Task {
	lines := m.lines()
	if line < 0 || line >= len(lines) || day < 0 || day >= len(m.result.Window) {
		return nil
	}
	l := lines[line]
	date := m.result.Window[day]

	var out []*task.Task
	keep := func(t *task.Task) {
		if m.gesture == nil || t != m.gesture.preview {
			out = append(out, t)
		}
	}
	if l.Row == nil {
		for _, t := range layout.SortByStart(layout.TasksForDate(m.tasks, date, l.Assignee())) {
			keep(t)
		}
		return out
	}
	for _, bar := range l.Row.Bars {
		if bar.Task.Covers(date) {
			keep(bar.Task)
		}
	}
	for _, item := range l.Row.Cells[day].Items {
		keep(item.Task)
	}
	return out
}

// selectedTask returns the task under the cursor, or nil.
func (m Model) selectedTask() *task.Task {
	items := m.cellTasks(m.cursor.Line, m.cursor.Day)
	if len(items) == 0 {
		return nil
	}
	return items[min(m.cursor.Item, len(items)-1)]
}

// currentLine returns the line under the cursor.
func (m Model) currentLine() (gridLine, bool) {
	lines := m.lines()
	if m.cursor.Line < 0 || m.cursor.Line >= len(lines) {
		return gridLine{}, false
	}
	return lines[m.cursor.Line], true
}

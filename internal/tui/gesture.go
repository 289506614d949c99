package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/crewgrid/internal/dragdrop"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/tui/commands"
)

// minuteAxis is the gesture axis: one unit per minute of the day, so the
// pointer is driven by keys in minutes rather than by mouse pixels.
var minuteAxis = dragdrop.Axis{Length: task.MinutesPerDay}

// untimedPointer is where the pointer starts for a task with no time.
const untimedPointer = 9 * 60

// gesture is a keyboard-driven drag: the live Drag plus the pointer and
// drop cell the keys have moved it to.
type gesture struct {
	drag    *dragdrop.Drag
	origin  *task.Task // The task as stored, still drawn in place
	preview *task.Task // Where the task would land
	start   dragdrop.Point
	pointer dragdrop.Point
	line    int
	day     int
}

func (g *gesture) kind() dragdrop.Kind {
	return g.drag.Kind()
}

// beginGesture starts a gesture of kind on the selected task.
func (m *Model) beginGesture(kind dragdrop.Kind) tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return m.setStatus("No task selected", true)
	}

	shape := t.Shape()
	start := dragdrop.Point{X: float64(shape.StartMinutes)}
	switch {
	case kind == dragdrop.ResizeEnd:
		start.X = float64(shape.EndMinutes)
	case shape.Timing != task.Timed:
		start.X = untimedPointer
	}

	drag, err := m.resolver.Begin(t, kind, start, minuteAxis)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	m.gesture = &gesture{
		drag:    drag,
		origin:  t,
		start:   start,
		pointer: start,
		line:    m.cursor.Line,
		day:     m.cursor.Day,
	}
	m.mode = ModeDrag
	m.updatePreview()
	m.log.Debug().Str("task_id", t.ID).Stringer("kind", kind).Msg("gesture started")
	return nil
}

// nudge moves the pointer along the time axis by minutes.
func (m *Model) nudge(minutes int) {
	g := m.gesture
	g.pointer.X = min(max(g.pointer.X+float64(minutes), 0), task.LastMinute)
	g.drag.Update(g.pointer)
	m.updatePreview()
}

// retarget moves the drop cell, keeping it inside the grid.
func (m *Model) retarget(dLine, dDay int) {
	g := m.gesture
	if g.kind() != dragdrop.Move {
		return
	}
	g.line = min(max(g.line+dLine, 0), max(len(m.lines())-1, 0))
	g.day = min(max(g.day+dDay, 0), len(m.result.Window)-1)
	m.updatePreview()
}

// target returns the cell the gesture would drop on.
func (m Model) target() dragdrop.Target {
	g := m.gesture
	tg := dragdrop.Target{Kind: dragdrop.TargetGridCell, Assignee: g.origin.Assignee, Date: g.origin.StartDate}
	if lines := m.lines(); g.line < len(lines) {
		tg.Assignee = lines[g.line].Assignee()
	}
	if g.day < len(m.result.Window) {
		tg.Date = m.result.Window[g.day]
	}
	return tg
}

// resolve drops d at the pointer. An untimed task whose pointer was moved
// also takes a time, as if dropped on the day view.
func (m Model) resolve(d *dragdrop.Drag) (task.Update, error) {
	g := m.gesture
	u, err := d.Complete(g.pointer, m.target())
	if err != nil {
		return task.Update{}, err
	}
	if d.Kind() != dragdrop.Move || g.origin.Shape().Timing == task.Timed || g.pointer == g.start {
		return u, nil
	}

	placed, err := m.resolver.Begin(g.origin, dragdrop.Move, g.start, minuteAxis)
	if err != nil {
		return task.Update{}, err
	}
	timeOnly, err := placed.Complete(g.pointer, dragdrop.Target{Kind: dragdrop.TargetDayView})
	if err != nil {
		return task.Update{}, err
	}
	u.StartTime, u.EndTime = timeOnly.StartTime, timeOnly.EndTime
	return u, nil
}

// updatePreview recomputes where the task would land, using a throwaway
// drag so the live one stays in progress.
func (m *Model) updatePreview() {
	g := m.gesture
	replay, err := m.resolver.Begin(g.origin, g.kind(), g.start, minuteAxis)
	if err == nil {
		var u task.Update
		if u, err = m.resolve(replay); err == nil {
			g.preview = u.Apply(g.origin)
		}
	}
	if err != nil {
		g.preview = nil
		m.log.Debug().Err(err).Msg("preview failed")
	}
	m.relayout()
}

// drop completes the gesture and saves the result.
func (m *Model) drop() tea.Cmd {
	g := m.gesture
	u, err := m.resolve(g.drag)
	m.endGesture()
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	after := u.Apply(g.origin)
	if err := after.Validate(); err != nil {
		return m.setStatus(fmt.Sprintf("Cannot drop here: %v", err), true)
	}
	if !u.Changes(g.origin) {
		return m.setStatus("Task already there", false)
	}
	m.log.Debug().Str("task_id", g.origin.ID).Strs("fields", u.Fields()).Msg("gesture dropped")
	return commands.SaveUpdate(m.ctx, m.repo, u)
}

// cancelGesture discards the gesture.
func (m *Model) cancelGesture() tea.Cmd {
	m.gesture.drag.Cancel()
	m.endGesture()
	return m.setStatus("Cancelled", false)
}

func (m *Model) endGesture() {
	m.gesture = nil
	m.mode = ModeNormal
	m.relayout()
}

// proposalLabel describes the preview for the footer.
func (m Model) proposalLabel() string {
	g := m.gesture
	if g.preview == nil {
		return "no valid drop"
	}
	p := g.preview
	label := fmt.Sprintf("@%s %s", p.Assignee, p.StartDate.Format("Mon Jan 2"))
	if p.IsMultiDay() {
		label += " - " + p.LastDate().Format("Mon Jan 2")
	}
	if s := p.Shape(); s.Timing == task.Timed {
		label += fmt.Sprintf(" %s-%s", task.ClampMinutesToTime(s.StartMinutes), task.ClampMinutesToTime(s.EndMinutes))
	}
	return label
}

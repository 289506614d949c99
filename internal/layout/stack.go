package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// Stacked is a task with its vertical offset inside a cell.
type Stacked struct {
	Task   *task.Task
	Offset float64
}

// startKey orders untimed tasks before any timed one.
func startKey(t *task.Task) int {
	s := t.Shape()
	if s.Timing != task.Timed {
		return -1
	}
	return s.StartMinutes
}

// SortByStart returns a copy of tasks ordered by start time. Untimed tasks
// come first and ties keep their input order.
func SortByStart(tasks []*task.Task) []*task.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b *task.Task) int {
		return startKey(a) - startKey(b)
	})
	return sorted
}

// StackOverlapping assigns each task in a cell its own row, in start order.
// Offsets grow by RowHeight; no interval packing is attempted.
func (e *Engine) StackOverlapping(tasks []*task.Task) []Stacked {
	sorted := SortByStart(tasks)
	out := make([]Stacked, len(sorted))
	for i, t := range sorted {
		out[i] = Stacked{Task: t, Offset: float64(i) * e.opts.RowHeight}
	}
	return out
}

// VisibleAndOverflow splits a cell's tasks into the first maxVisible in
// start order and the rest. maxVisible <= 0 uses the engine's MaxVisible.
func (e *Engine) VisibleAndOverflow(tasks []*task.Task, maxVisible int) (visible, overflow []*task.Task) {
	if maxVisible <= 0 {
		maxVisible = e.opts.MaxVisible
	}
	sorted := SortByStart(tasks)
	if len(sorted) <= maxVisible {
		return sorted, nil
	}
	return sorted[:maxVisible], sorted[maxVisible:]
}

// PositionDayViewTask places a timed task on the vertical day view.
// Untimed tasks return false.
func (e *Engine) PositionDayViewTask(t *task.Task) (Rect, bool) {
	shape := t.Shape()
	if shape.Timing != task.Timed {
		return Rect{}, false
	}

	scale := func(minutes int) float64 {
		return float64(minutes) * e.opts.DaySlotHeight / float64(e.opts.DaySlotMinutes)
	}
	return Rect{
		Top:    scale(shape.StartMinutes),
		Height: max(e.opts.DayMinHeight, scale(shape.EndMinutes-shape.StartMinutes)),
		Unit:   Pixels,
	}, true
}

// TasksForCell returns the single-day tasks of an assignee starting on date.
// Multi-day tasks are drawn as bars and are excluded.
func TasksForCell(tasks []*task.Task, assignee string, date time.Time) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t.Assignee == assignee && !t.IsMultiDay() && dateutil.SameDay(t.StartDate, date) {
			out = append(out, t)
		}
	}
	return out
}

// TasksForDate returns every task covering date, multi-day ones included.
// An empty assignee matches everyone.
func TasksForDate(tasks []*task.Task, date time.Time, assignee string) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if assignee != "" && t.Assignee != assignee {
			continue
		}
		if t.Covers(date) {
			out = append(out, t)
		}
	}
	return out
}

// TasksForSlot returns the timed tasks on date that overlap [slotStart, slotEnd).
func TasksForSlot(tasks []*task.Task, date time.Time, slotStart, slotEnd int) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if !t.Covers(date) {
			continue
		}
		s := t.Shape()
		if s.Timing == task.Timed && task.TimesOverlap(s.StartMinutes, s.EndMinutes, slotStart, slotEnd) {
			out = append(out, t)
		}
	}
	return out
}

// CountForDate returns how many of tasks cover date.
func CountForDate(tasks []*task.Task, date time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Covers(date) {
			n++
		}
	}
	return n
}

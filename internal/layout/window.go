package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// Row is one resource line of the scheduler grid. Tasks are matched to it
// by Assignee.
type Row struct {
	Key      string
	Label    string
	Assignee string
}

// Warning reports a task that was laid out on a fallback path.
type Warning struct {
	TaskID string
	Err    error
}

// Placed is a single-day task positioned inside its date cell. Rect is in
// pixels relative to the cell's top-left corner.
type Placed struct {
	Task  *task.Task
	Rect  Rect
	Timed bool
}

// Bar is a multi-day task drawn across the window. Rect.Top is its lane.
type Bar struct {
	Task *task.Task
	MultiDayRect
}

// Cell holds the single-day tasks of one row on one date.
type Cell struct {
	Date  time.Time
	Items []Placed
}

// RowLayout is the computed layout of one grid row.
type RowLayout struct {
	Row    Row
	Bars   []Bar
	Cells  []Cell
	Height float64
}

// Result is a full grid layout pass.
type Result struct {
	Window   []time.Time
	Rows     []RowLayout
	Warnings []Warning
}

// LayoutWindow lays out every row across the date window. Multi-day bars
// take the top lanes of a row, one lane each; single-day tasks are stacked
// per cell below them. cellWidth is the time axis length of one date cell.
func (e *Engine) LayoutWindow(tasks []*task.Task, rows []Row, window []time.Time, cellWidth float64) Result {
	res := Result{Window: window, Rows: make([]RowLayout, 0, len(rows))}
	warned := make(map[string]bool)
	warn := func(t *task.Task) {
		if err := t.Shape().Err; err != nil && !warned[t.ID] {
			warned[t.ID] = true
			res.Warnings = append(res.Warnings, Warning{TaskID: t.ID, Err: err})
		}
	}

	for _, row := range rows {
		rl := RowLayout{Row: row}

		var multi []*task.Task
		for _, t := range tasks {
			if t.Assignee == row.Assignee && t.IsMultiDay() {
				multi = append(multi, t)
			}
		}
		slices.SortStableFunc(multi, func(a, b *task.Task) int {
			return dateutil.DaysBetween(b.StartDate, a.StartDate)
		})
		for _, t := range multi {
			r, ok := e.PositionMultiDayTask(t, window)
			if !ok {
				continue
			}
			warn(t)
			r.Top = float64(len(rl.Bars)) * e.opts.RowHeight
			rl.Bars = append(rl.Bars, Bar{Task: t, MultiDayRect: r})
		}

		barsHeight := float64(len(rl.Bars)) * e.opts.RowHeight
		tallest := 0.0
		rl.Cells = make([]Cell, len(window))
		for i, date := range window {
			cell := Cell{Date: date}
			for _, s := range e.StackOverlapping(TasksForCell(tasks, row.Assignee, date)) {
				warn(s.Task)
				r, timed := e.PositionSingleDayTask(s.Task, cellWidth)
				if !timed {
					r = e.PositionUntimed(cellWidth)
				}
				r.Top = barsHeight + s.Offset
				cell.Items = append(cell.Items, Placed{Task: s.Task, Rect: r, Timed: timed})
			}
			if h := float64(len(cell.Items)) * e.opts.RowHeight; h > tallest {
				tallest = h
			}
			rl.Cells[i] = cell
		}

		rl.Height = max(barsHeight+tallest, e.opts.RowHeight)
		res.Rows = append(res.Rows, rl)
	}
	return res
}

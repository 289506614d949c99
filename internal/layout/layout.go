// Package layout converts task time ranges into positions on the
// scheduler's time and date axes.
//
// Every function here is pure: callers pass a fresh task snapshot and the
// current grid, and get disposable rectangles back. Nothing is cached
// between passes, so a zoom or navigation change is handled by simply
// calling the engine again.
package layout

import (
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// Unit identifies the coordinate space of a Rect.
type Unit int

const (
	Pixels Unit = iota
	Percent
)

// Rect is a computed task position. Left/Width run along the time or date
// axis, Top/Height across it.
type Rect struct {
	Left   float64
	Width  float64
	Top    float64
	Height float64
	Unit   Unit
}

// Right returns Left + Width.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// ToPixels converts a percent rect onto an axis of the given length.
// Pixel rects are returned unchanged.
func (r Rect) ToPixels(axisLength float64) Rect {
	if r.Unit == Pixels {
		return r
	}
	r.Left = r.Left / 100 * axisLength
	r.Width = r.Width / 100 * axisLength
	r.Unit = Pixels
	return r
}

// Options tunes the engine. Zero fields fall back to DefaultOptions.
type Options struct {
	// MinWidth is the narrowest a timed block may render, in axis units.
	MinWidth float64
	// MinWidthFraction, if set, raises the floor to this share of the axis.
	MinWidthFraction float64
	// RowHeight is the vertical step between stacked tasks.
	RowHeight float64
	// UntimedHeight is the height of an untimed block.
	UntimedHeight float64
	// MaxVisible caps the tasks shown inline in a month cell.
	MaxVisible int
	// DaySlotMinutes and DaySlotHeight define the day view's vertical scale.
	DaySlotMinutes int
	DaySlotHeight  float64
	// DayMinHeight is the shortest a day-view block may render.
	DayMinHeight float64
}

// DefaultOptions mirrors the reference rendering: a 60-unit width floor,
// three inline tasks per month cell and 60px per 30-minute day-view slot.
func DefaultOptions() Options {
	return Options{
		MinWidth:       60,
		RowHeight:      28,
		UntimedHeight:  20,
		MaxVisible:     3,
		DaySlotMinutes: 30,
		DaySlotHeight:  60,
		DayMinHeight:   30,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinWidth <= 0 {
		o.MinWidth = d.MinWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = d.RowHeight
	}
	if o.UntimedHeight <= 0 {
		o.UntimedHeight = d.UntimedHeight
	}
	if o.MaxVisible <= 0 {
		o.MaxVisible = d.MaxVisible
	}
	if o.DaySlotMinutes <= 0 {
		o.DaySlotMinutes = d.DaySlotMinutes
	}
	if o.DaySlotHeight <= 0 {
		o.DaySlotHeight = d.DaySlotHeight
	}
	if o.DayMinHeight <= 0 {
		o.DayMinHeight = d.DayMinHeight
	}
	return o
}

// Engine computes layouts with a fixed set of options.
type Engine struct {
	opts Options
}

// New creates an Engine. Unset options take their defaults.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// minWidth returns the width floor for an axis. It never reaches zero.
func (e *Engine) minWidth(axisLength float64) float64 {
	floor := e.opts.MinWidth
	if frac := e.opts.MinWidthFraction * axisLength; frac > floor {
		floor = frac
	}
	return floor
}

// PositionSingleDayTask places a timed task along a day axis of axisLength
// units. It returns false for untimed tasks and for tasks whose times do
// not parse; callers render those with PositionUntimed.
func (e *Engine) PositionSingleDayTask(t *task.Task, axisLength float64) (Rect, bool) {
	shape := t.Shape()
	if shape.Timing != task.Timed {
		return Rect{}, false
	}

	left := task.MinutesToPosition(shape.StartMinutes, task.MinutesPerDay, axisLength)
	width := task.MinutesToPosition(shape.EndMinutes-shape.StartMinutes, task.MinutesPerDay, axisLength)
	return Rect{
		Left:   left,
		Width:  max(e.minWidth(axisLength), width),
		Height: e.opts.RowHeight,
		Unit:   Pixels,
	}, true
}

// PositionUntimed is the fallback block for tasks without a usable time:
// the whole cell wide, one compact row high.
func (e *Engine) PositionUntimed(axisLength float64) Rect {
	return Rect{Width: axisLength, Height: e.opts.UntimedHeight, Unit: Pixels}
}

// MultiDayRect is a continuous bar across date columns.
type MultiDayRect struct {
	Rect
	StartIndex int
	SpanDays   int
	// ClippedStart and ClippedEnd report that the task extends past the
	// visible window on that side.
	ClippedStart bool
	ClippedEnd   bool
}

// PositionMultiDayTask places a task as one bar across the date window, in
// percent of the window width. A task that started before the window is
// clipped to its first column rather than hidden; a task that ends after
// it runs to the last column. Tasks entirely outside the window return false.
func (e *Engine) PositionMultiDayTask(t *task.Task, window []time.Time) (MultiDayRect, bool) {
	n := len(window)
	if n == 0 {
		return MultiDayRect{}, false
	}

	startIndex := dateutil.DaysBetween(window[0], t.StartDate)
	endIndex := dateutil.DaysBetween(window[0], t.LastDate())
	if endIndex < 0 || startIndex > n-1 {
		return MultiDayRect{}, false
	}

	r := MultiDayRect{
		ClippedStart: startIndex < 0,
		ClippedEnd:   endIndex > n-1,
	}
	startIndex = max(startIndex, 0)
	endIndex = min(endIndex, n-1)

	r.StartIndex = startIndex
	r.SpanDays = endIndex - startIndex + 1
	r.Rect = Rect{
		Left:   float64(startIndex) * 100 / float64(n),
		Width:  float64(r.SpanDays) * 100 / float64(n),
		Height: e.opts.RowHeight,
		Unit:   Percent,
	}
	return r, true
}

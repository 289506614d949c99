// Package dragdrop turns pointer gestures on a scheduled task into a
// proposed task update.
//
// A gesture is a short-lived state machine: Begin captures the task's
// original range, Update is called on every pointer move and returns the
// snapped proposal, and Complete or Cancel ends it. Nothing is mutated
// here; the caller applies the returned task.Update to its store.
package dragdrop

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

var (
	ErrResizeNotAllowed = errors.New("only single-day timed tasks can be resized")
	ErrNotDragging      = errors.New("no gesture in progress")
	ErrInvalidAxis      = errors.New("axis length must be positive")
)

// Kind is the gesture type.
type Kind int

const (
	Move Kind = iota
	ResizeStart
	ResizeEnd
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Phase is the gesture lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Dropped
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Point is a pointer position in the same units as the Axis.
type Point struct {
	X, Y float64
}

// Axis describes the day's time axis the gesture runs along.
type Axis struct {
	Length   float64
	Vertical bool // day view: time runs top to bottom
}

func (a Axis) offset(p Point) float64 {
	if a.Vertical {
		return p.Y
	}
	return p.X
}

// TargetKind selects which fields a drop is allowed to change.
type TargetKind int

const (
	// TargetGridCell changes assignee, date and time.
	TargetGridCell TargetKind = iota
	// TargetMonthCell changes only the date.
	TargetMonthCell
	// TargetDayView changes only the time of day.
	TargetDayView
)

// Target is where a gesture was dropped.
type Target struct {
	Kind     TargetKind
	Assignee string
	Date     time.Time
}

// Options are the snapping rules, in minutes.
type Options struct {
	MoveSnap   int
	ResizeSnap int
	MinSegment int
}

// DefaultOptions snaps moves to 15 minutes and resizes to 5, with a
// 5-minute shortest task.
func DefaultOptions() Options {
	return Options{MoveSnap: 15, ResizeSnap: 5, MinSegment: 5}
}

// Proposal is the range a gesture would produce if dropped now.
type Proposal struct {
	Start int
	End   int
	Timed bool
}

// StartTime formats Start as HH:MM.
func (p Proposal) StartTime() string {
	return task.ClampMinutesToTime(p.Start)
}

// EndTime formats End as HH:MM.
func (p Proposal) EndTime() string {
	return task.ClampMinutesToTime(p.End)
}

// Resolver starts gestures with a fixed set of snapping rules.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver. Non-positive options take their defaults.
func NewResolver(opts Options) *Resolver {
	d := DefaultOptions()
	if opts.MoveSnap <= 0 {
		opts.MoveSnap = d.MoveSnap
	}
	if opts.ResizeSnap <= 0 {
		opts.ResizeSnap = d.ResizeSnap
	}
	if opts.MinSegment <= 0 {
		opts.MinSegment = d.MinSegment
	}
	return &Resolver{opts: opts}
}

// Begin starts a gesture with the default snapping rules.
func Begin(t *task.Task, kind Kind, origin Point, axis Axis) (*Drag, error) {
	return NewResolver(DefaultOptions()).Begin(t, kind, origin, axis)
}

// Begin captures t's current range. Multi-day and untimed tasks can only
// be moved.
func (r *Resolver) Begin(t *task.Task, kind Kind, origin Point, axis Axis) (*Drag, error) {
	if axis.Length <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAxis, axis.Length)
	}

	shape := t.Shape()
	if kind != Move && (shape.Span == task.MultiDay || shape.Timing != task.Timed) {
		return nil, fmt.Errorf("%w: task %s", ErrResizeNotAllowed, t.ID)
	}

	d := &Drag{
		task:   t.Clone(),
		kind:   kind,
		origin: origin,
		axis:   axis,
		opts:   r.opts,
		shape:  shape,
		phase:  Dragging,
	}
	d.last = Proposal{Start: shape.StartMinutes, End: shape.EndMinutes, Timed: shape.Timing == task.Timed}
	return d, nil
}

// Drag is an in-progress gesture.
type Drag struct {
	task   *task.Task
	kind   Kind
	origin Point
	axis   Axis
	opts   Options
	shape  task.Shape
	phase  Phase
	last   Proposal
}

// Task returns the dragged task as it was when the gesture began.
func (d *Drag) Task() *task.Task {
	return d.task
}

// Kind returns the gesture type.
func (d *Drag) Kind() Kind {
	return d.kind
}

// Phase returns the gesture state.
func (d *Drag) Phase() Phase {
	return d.phase
}

// Proposal returns the last computed proposal.
func (d *Drag) Proposal() Proposal {
	return d.last
}

// Update recomputes the proposal for the current pointer position. After the
// gesture ends it returns the final proposal unchanged.
//
// Timed tasks follow the pointer's travel since Begin, so the point where
// the block was grabbed stays under the pointer. Untimed tasks have no start
// to keep and are placed at the absolute pointer position.
func (d *Drag) Update(p Point) Proposal {
	if d.phase != Dragging {
		return d.last
	}
	if d.shape.Timing != task.Timed {
		return d.last
	}

	delta := task.PositionToMinutes(d.axis.offset(p)-d.axis.offset(d.origin), d.axis.Length, task.MinutesPerDay)
	switch d.kind {
	case Move:
		d.last = d.move(delta)
	case ResizeStart:
		d.last = d.resizeStart(delta)
	case ResizeEnd:
		d.last = d.resizeEnd(delta)
	}
	return d.last
}

func (d *Drag) move(delta float64) Proposal {
	duration := d.shape.EndMinutes - d.shape.StartMinutes
	start := snap(float64(d.shape.StartMinutes)+delta, d.opts.MoveSnap)
	start = min(max(start, 0), d.latestStart())
	end := min(start+duration, task.LastMinute)
	return Proposal{Start: start, End: end, Timed: true}
}

func (d *Drag) resizeStart(delta float64) Proposal {
	end := d.shape.EndMinutes
	start := d.shape.StartMinutes + snap(delta, d.opts.ResizeSnap)
	start = min(max(start, 0), end-d.opts.MinSegment)
	return Proposal{Start: start, End: end, Timed: true}
}

func (d *Drag) resizeEnd(delta float64) Proposal {
	start := d.shape.StartMinutes
	end := d.shape.EndMinutes + snap(delta, d.opts.ResizeSnap)
	end = max(min(end, task.LastMinute), start+d.opts.MinSegment)
	return Proposal{Start: start, End: end, Timed: true}
}

// Complete ends the gesture at p and returns the update for target. Only
// the fields the gesture and target may change are set; a drop on the
// task's current position still yields an update that changes nothing.
func (d *Drag) Complete(p Point, target Target) (task.Update, error) {
	if d.phase != Dragging {
		return task.Update{}, fmt.Errorf("%w: gesture is %s", ErrNotDragging, d.phase)
	}
	prop := d.Update(p)
	d.phase = Dropped

	u := task.Update{TaskID: d.task.ID}
	if d.kind != Move {
		if d.kind == ResizeStart {
			u.StartTime = ptr(prop.StartTime())
			if d.task.EndTime == "" {
				// The end was implied by the start; pin it so it stays put.
				u.EndTime = ptr(prop.EndTime())
			}
		} else {
			u.EndTime = ptr(prop.EndTime())
		}
		return u, nil
	}

	switch target.Kind {
	case TargetGridCell:
		u.Assignee = ptr(target.Assignee)
		d.setDate(&u, target.Date)
		if prop.Timed && d.shape.Span == task.SingleDay {
			d.setTime(&u, prop)
		}
	case TargetMonthCell:
		d.setDate(&u, target.Date)
	case TargetDayView:
		if prop.Timed {
			d.setTime(&u, prop)
		} else {
			d.setTime(&u, d.placeUntimed(p))
		}
	}
	return u, nil
}

// Cancel discards the gesture.
func (d *Drag) Cancel() {
	if d.phase == Dragging {
		d.phase = Cancelled
	}
}

// setDate moves the task to date, shifting the end date by the same number
// of days so a multi-day task moves as a block.
func (d *Drag) setDate(u *task.Update, date time.Time) {
	date = dateutil.DateOf(date)
	u.Date = &date
	if d.task.EndDate != nil {
		end := dateutil.AddDays(*d.task.EndDate, dateutil.DaysBetween(d.task.StartDate, date))
		u.EndDate = &end
	}
}

func (d *Drag) setTime(u *task.Update, p Proposal) {
	u.StartTime = ptr(p.StartTime())
	u.EndTime = ptr(p.EndTime())
}

// placeUntimed gives an untimed task dropped on the day view a one-hour
// block at the pointer.
func (d *Drag) placeUntimed(p Point) Proposal {
	raw := task.PositionToMinutes(d.axis.offset(p), d.axis.Length, task.MinutesPerDay)
	start := min(max(snap(raw, d.opts.MoveSnap), 0), d.latestStart())
	return Proposal{Start: start, End: min(start+60, task.LastMinute), Timed: true}
}

// snap rounds minutes to the nearest multiple of step.
// latestStart is the last move-snap mark that still leaves room for the
// shortest segment before the end of the day.
func (d *Drag) latestStart() int {
	return (task.LastMinute - d.opts.MinSegment) / d.opts.MoveSnap * d.opts.MoveSnap
}

func snap(minutes float64, step int) int {
	return int(math.Round(minutes/float64(step))) * step
}

func ptr[T any](v T) *T {
	return &v
}

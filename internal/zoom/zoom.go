// Package zoom holds the scheduler's zoom and navigation state.
package zoom

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

const (
	DefaultGranularity = 60
	DefaultDateSpan    = 6
)

// State is a snapshot of the zoom level and visible window.
type State struct {
	Granularity int
	DateSpan    int
	Anchor      time.Time
}

// Window returns the visible dates.
func (s State) Window() []time.Time {
	return calendar.BuildDateWindow(s.Anchor, s.DateSpan)
}

// Columns returns the time columns for the current granularity.
func (s State) Columns() []calendar.Slot {
	slots, _ := calendar.BuildTimeColumns(s.Granularity)
	return slots
}

// Controller owns the zoom state. Every change bumps Generation so callers
// know their grid and layout are stale.
type Controller struct {
	state       State
	granularity int
	span        int
	generation  uint64
}

// New creates a controller at the default zoom, anchored on anchor.
func New(anchor time.Time) *Controller {
	return &Controller{
		state:       State{Granularity: DefaultGranularity, DateSpan: DefaultDateSpan, Anchor: dateutil.DateOf(anchor)},
		granularity: DefaultGranularity,
		span:        DefaultDateSpan,
	}
}

// NewWithDefaults creates a controller whose Reset returns to granularity
// and span instead of the built-in defaults.
func NewWithDefaults(anchor time.Time, granularity, span int) (*Controller, error) {
	if err := calendar.ValidateGranularity(granularity); err != nil {
		return nil, err
	}
	if err := validateSpan(span); err != nil {
		return nil, err
	}
	c := New(anchor)
	c.granularity, c.span = granularity, span
	c.state.Granularity, c.state.DateSpan = granularity, span
	return c, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Generation increments on every state change.
func (c *Controller) Generation() uint64 {
	return c.generation
}

func (c *Controller) changed() bool {
	c.generation++
	return true
}

// ZoomTimeIn steps to the next finer granularity. It reports whether the
// state changed; at 30 minutes it does nothing.
func (c *Controller) ZoomTimeIn() bool {
	i := slices.Index(calendar.Granularities, c.state.Granularity)
	if i <= 0 {
		return false
	}
	c.state.Granularity = calendar.Granularities[i-1]
	return c.changed()
}

// ZoomTimeOut steps to the next coarser granularity.
func (c *Controller) ZoomTimeOut() bool {
	i := slices.Index(calendar.Granularities, c.state.Granularity)
	if i < 0 || i == len(calendar.Granularities)-1 {
		return false
	}
	c.state.Granularity = calendar.Granularities[i+1]
	return c.changed()
}

// ZoomDateIn shows one day fewer.
func (c *Controller) ZoomDateIn() bool {
	return c.setSpan(c.state.DateSpan - 1)
}

// ZoomDateOut shows one day more.
func (c *Controller) ZoomDateOut() bool {
	return c.setSpan(c.state.DateSpan + 1)
}

func (c *Controller) setSpan(span int) bool {
	span = calendar.ClampDateSpan(span)
	if span == c.state.DateSpan {
		return false
	}
	c.state.DateSpan = span
	return c.changed()
}

// Reset restores the default granularity and span. The anchor is kept.
func (c *Controller) Reset() bool {
	if c.state.Granularity == c.granularity && c.state.DateSpan == c.span {
		return false
	}
	c.state.Granularity, c.state.DateSpan = c.granularity, c.span
	return c.changed()
}

// SetGranularity jumps to a granularity directly.
func (c *Controller) SetGranularity(g int) error {
	if err := calendar.ValidateGranularity(g); err != nil {
		return err
	}
	if g != c.state.Granularity {
		c.state.Granularity = g
		c.changed()
	}
	return nil
}

// SetDateSpan sets the number of visible days.
func (c *Controller) SetDateSpan(span int) error {
	if err := validateSpan(span); err != nil {
		return err
	}
	c.setSpan(span)
	return nil
}

// Navigate moves the window by half its span.
func (c *Controller) Navigate(dir calendar.Direction) {
	c.state.Anchor = calendar.ShiftWindow(c.state.Anchor, c.state.DateSpan, dir)
	c.changed()
}

// SetAnchor moves the window to start on date.
func (c *Controller) SetAnchor(date time.Time) bool {
	date = dateutil.DateOf(date)
	if date.Equal(c.state.Anchor) {
		return false
	}
	c.state.Anchor = date
	return c.changed()
}

func validateSpan(span int) error {
	if span < calendar.MinDateSpan || span > calendar.MaxDateSpan {
		return fmt.Errorf("%w: date span %d not in [%d, %d]", task.ErrOutOfRange, span, calendar.MinDateSpan, calendar.MaxDateSpan)
	}
	return nil
}

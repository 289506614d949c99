// Package task defines the core domain types for crewgrid.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyAssignee      = errors.New("assignee cannot be empty")
	ErrInvalidFormat      = errors.New("time must be in HH:MM format")
	ErrInvalidGranularity = errors.New("unsupported time granularity")
	ErrOutOfRange         = errors.New("value out of range")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrEndWithoutStart    = errors.New("end time requires a start time")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// DefaultColor is used when a task is created without a color tag.
const DefaultColor = "blue"

// Task represents a scheduled piece of team work.
type Task struct {
	ID          string
	Title       string
	Description string
	Assignee    string     // display name, matched by string equality
	StartDate   time.Time  // calendar date
	EndDate     *time.Time // nil or equal to StartDate for single-day tasks
	StartTime   string     // "HH:MM", optional
	EndTime     string     // "HH:MM", optional
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input holds raw, user-supplied task fields.
type Input struct {
	Title       string
	Description string
	Assignee    string
	Date        string // YYYY-MM-DD, empty means today
	EndDate     string // YYYY-MM-DD, optional
	StartTime   string // HH:MM, optional
	EndTime     string // HH:MM, optional
	Color       string
}

// New creates a new Task with validation.
func New(in Input) (*Task, error) {
	start, err := dateutil.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}

	t := &Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Assignee:    strings.TrimSpace(in.Assignee),
		StartDate:   start,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Color:       in.Color,
		CreatedAt:   time.Now(),
	}
	t.UpdatedAt = t.CreatedAt
	if t.Color == "" {
		t.Color = DefaultColor
	}

	if in.EndDate != "" {
		end, err := dateutil.ParseStrict(in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end date: %w", err)
		}
		t.EndDate = &end
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task invariants.
// Time order is only enforced for single-day tasks: a multi-day task reuses
// its time-of-day on every spanned day.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.Assignee == "" {
		return ErrEmptyAssignee
	}
	if t.EndDate != nil && dateutil.DaysBetween(t.StartDate, *t.EndDate) < 0 {
		return dateutil.ErrEndDateBeforeStart
	}

	var startMin, endMin int
	if t.StartTime != "" {
		m, err := TimeToMinutes(t.StartTime)
		if err != nil {
			return fmt.Errorf("start time: %w", err)
		}
		startMin = m
	}
	if t.EndTime != "" {
		if t.StartTime == "" {
			return ErrEndWithoutStart
		}
		m, err := TimeToMinutes(t.EndTime)
		if err != nil {
			return fmt.Errorf("end time: %w", err)
		}
		endMin = m
		if !t.IsMultiDay() && endMin <= startMin {
			return ErrEndBeforeStart
		}
	}
	return nil
}

// IsMultiDay returns true if the task ends on a later date than it starts.
func (t *Task) IsMultiDay() bool {
	return t.EndDate != nil && dateutil.DaysBetween(t.StartDate, *t.EndDate) > 0
}

// IsTimed returns true if the task has a start time.
func (t *Task) IsTimed() bool {
	return t.StartTime != ""
}

// LastDate returns the end date, or the start date for single-day tasks.
func (t *Task) LastDate() time.Time {
	if t.EndDate != nil {
		return *t.EndDate
	}
	return t.StartDate
}

// SpanDays returns the number of calendar days the task covers.
func (t *Task) SpanDays() int {
	return dateutil.DaysBetween(t.StartDate, t.LastDate()) + 1
}

// Covers returns true if date falls within [StartDate, LastDate].
func (t *Task) Covers(date time.Time) bool {
	return dateutil.DaysBetween(t.StartDate, date) >= 0 &&
		dateutil.DaysBetween(date, t.LastDate()) >= 0
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.EndDate != nil {
		end := *t.EndDate
		c.EndDate = &end
	}
	return &c
}

// Span distinguishes single-day from multi-day tasks.
type Span int

const (
	SingleDay Span = iota
	MultiDay
)

// Timing distinguishes tasks with a time range from untimed ones.
type Timing int

const (
	Untimed Timing = iota
	Timed
)

// Shape is a task's layout variant, resolved once before layout.
type Shape struct {
	Span         Span
	Timing       Timing
	StartMinutes int
	EndMinutes   int
	// Err is set when a time string was present but malformed. The task is
	// then treated as untimed.
	Err error
}

// defaultDuration is applied when a timed task has no end time.
const defaultDuration = 60

// Shape resolves the task's layout variant.
func (t *Task) Shape() Shape {
	s := Shape{Span: SingleDay, Timing: Untimed}
	if t.IsMultiDay() {
		s.Span = MultiDay
	}
	if t.StartTime == "" {
		return s
	}

	start, err := TimeToMinutes(t.StartTime)
	if err != nil {
		s.Err = fmt.Errorf("task %s start time: %w", t.ID, err)
		return s
	}
	end := min(start+defaultDuration, LastMinute)
	if t.EndTime != "" {
		end, err = TimeToMinutes(t.EndTime)
		if err != nil {
			s.Err = fmt.Errorf("task %s end time: %w", t.ID, err)
			return s
		}
	}

	s.Timing = Timed
	s.StartMinutes = start
	s.EndMinutes = end
	return s
}

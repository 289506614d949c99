// Package calendar generates the day, week and time-slot sequences the
// scheduler views are drawn on.
package calendar

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

const (
	// MonthGridDays is six full Sunday-first weeks.
	MonthGridDays = 42
	// MinDateSpan and MaxDateSpan bound the visible date window.
	MinDateSpan = 1
	MaxDateSpan = 14
	// DayViewSlotMinutes is the slot width of the single-day view.
	DayViewSlotMinutes = 30
)

// Granularities lists the supported time-column widths in minutes,
// finest first.
var Granularities = []int{30, 60, 120, 240, 360}

// Day is one cell of a calendar view.
type Day struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	Slots          []Slot
}

// Slot is a minute-of-day bucket on a given date.
type Slot struct {
	Date        time.Time
	Start       int // minutes since midnight, inclusive
	End         int // minutes since midnight, exclusive
	IsHourMark  bool
	IsMajorMark bool
	IsNightTime bool
	Label       string // "HH:MM"
	ShortLabel  string // "HH"
}

// Minutes returns the slot width.
func (s Slot) Minutes() int {
	return s.End - s.Start
}

// BuildMonthGrid returns the 42 days shown for anchor's month, starting on the
// Sunday on or before the first of the month. today is injected so the grid
// is a pure function of its inputs.
func BuildMonthGrid(anchor, today time.Time) []Day {
	first := dateutil.FirstOfMonth(anchor)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]Day, 0, MonthGridDays)
	for i := 0; i < MonthGridDays; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{
			Date:           d,
			IsCurrentMonth: d.Month() == first.Month() && d.Year() == first.Year(),
			IsToday:        dateutil.SameDay(d, today),
		})
	}
	return days
}

// MonthGrid is BuildMonthGrid relative to the system date.
func MonthGrid(anchor time.Time) []Day {
	return BuildMonthGrid(anchor, time.Now())
}

// ClampDateSpan clamps span into [MinDateSpan, MaxDateSpan].
func ClampDateSpan(span int) int {
	return min(max(span, MinDateSpan), MaxDateSpan)
}

// BuildDateWindow returns span consecutive dates starting at anchor.
// span is clamped to [1, 14].
func BuildDateWindow(anchor time.Time, span int) []time.Time {
	span = ClampDateSpan(span)
	start := dateutil.DateOf(anchor)

	dates := make([]time.Time, span)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// ValidateGranularity returns ErrInvalidGranularity unless g is one of the
// supported zoom levels.
func ValidateGranularity(g int) error {
	if !slices.Contains(Granularities, g) || task.MinutesPerDay%g != 0 {
		return fmt.Errorf("%w: %d minutes", task.ErrInvalidGranularity, g)
	}
	return nil
}

// BuildTimeColumns partitions the day into slots of granularity minutes.
func BuildTimeColumns(granularity int) ([]Slot, error) {
	if err := ValidateGranularity(granularity); err != nil {
		return nil, err
	}
	return buildSlots(time.Time{}, granularity), nil
}

// BuildDaySlots returns the time columns of a single date.
func BuildDaySlots(date time.Time, granularity int) ([]Slot, error) {
	if err := ValidateGranularity(granularity); err != nil {
		return nil, err
	}
	return buildSlots(dateutil.DateOf(date), granularity), nil
}

// BuildWindowDays binds time columns to each date of a window.
func BuildWindowDays(window []time.Time, granularity int, today time.Time) ([]Day, error) {
	if err := ValidateGranularity(granularity); err != nil {
		return nil, err
	}
	days := make([]Day, len(window))
	for i, d := range window {
		days[i] = Day{
			Date:           d,
			IsCurrentMonth: true,
			IsToday:        dateutil.SameDay(d, today),
			Slots:          buildSlots(d, granularity),
		}
	}
	return days, nil
}

func buildSlots(date time.Time, granularity int) []Slot {
	slots := make([]Slot, 0, task.MinutesPerDay/granularity)
	for m := 0; m < task.MinutesPerDay; m += granularity {
		hour := m / 60
		slots = append(slots, Slot{
			Date:        date,
			Start:       m,
			End:         m + granularity,
			IsHourMark:  m%60 == 0,
			IsMajorMark: m%360 == 0,
			IsNightTime: hour < 6 || hour >= 22,
			Label:       fmt.Sprintf("%02d:%02d", hour, m%60),
			ShortLabel:  fmt.Sprintf("%02d", hour),
		})
	}
	return slots
}

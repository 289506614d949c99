package calendar

import (
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
)

// Direction is a navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// WindowStep returns how many days the date window moves per step:
// half the visible span, at least one day.
func WindowStep(span int) int {
	return max(1, ClampDateSpan(span)/2)
}

// ShiftWindow moves a window anchor by one step in dir.
func ShiftWindow(anchor time.Time, span int, dir Direction) time.Time {
	return dateutil.AddDays(anchor, int(dir)*WindowStep(span))
}

// ShiftMonth returns the first day of the month adjacent to anchor's.
func ShiftMonth(anchor time.Time, dir Direction) time.Time {
	return dateutil.FirstOfMonth(anchor).AddDate(0, int(dir), 0)
}

// ShiftDay moves a day-view date by one day in dir.
func ShiftDay(date time.Time, dir Direction) time.Time {
	return dateutil.AddDays(date, int(dir))
}

// MonthTitle formats the month heading, e.g. "June 2025".
func MonthTitle(anchor time.Time) string {
	return anchor.Format("January 2006")
}

// WindowTitle formats the visible range, e.g. "Jun 20 - Jun 25".
func WindowTitle(window []time.Time) string {
	if len(window) == 0 {
		return ""
	}
	first, last := window[0], window[len(window)-1]
	if len(window) == 1 {
		return first.Format("Jan 2")
	}
	return first.Format("Jan 2") + " - " + last.Format("Jan 2")
}

// WeekdayHeaders are the Sunday-first column headers of the month grid.
var WeekdayHeaders = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

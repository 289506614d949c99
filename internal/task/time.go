package task

import (
	"fmt"
	"strconv"
)

const (
	// MinutesPerDay is the length of the day axis.
	MinutesPerDay = 24 * 60
	// LastMinute is the latest representable minute of the day (23:59).
	LastMinute = MinutesPerDay - 1
)

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns ErrInvalidFormat for anything that is not a 24h clock time.
func TimeToMinutes(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}
	if !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Returns ErrOutOfRange if m is not in [0, 1439].
func MinutesToTime(m int) (string, error) {
	if m < 0 || m > LastMinute {
		return "", fmt.Errorf("%w: minute %d", ErrOutOfRange, m)
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

// ClampMinutesToTime converts minutes to "HH:MM", clamping into [00:00, 23:59].
func ClampMinutesToTime(m int) string {
	s, _ := MinutesToTime(ClampMinutes(m))
	return s
}

// ClampMinutes clamps m into [0, 1439].
func ClampMinutes(m int) int {
	return min(max(m, 0), LastMinute)
}

// MinutesToPosition projects a minute offset linearly onto an axis.
func MinutesToPosition(minutes, totalMinutes int, axisLength float64) float64 {
	if totalMinutes <= 0 {
		return 0
	}
	return float64(minutes) / float64(totalMinutes) * axisLength
}

// PositionToMinutes is the inverse of MinutesToPosition.
// The result is unrounded; callers snap it to their own granularity.
func PositionToMinutes(offset, axisLength float64, totalMinutes int) float64 {
	if axisLength <= 0 {
		return 0
	}
	return offset / axisLength * float64(totalMinutes)
}

// DurationLabel formats the length of [start, end) as "1h 30m", "45m" or "2h".
// Zero and negative durations produce an empty label.
func DurationLabel(startMinutes, endMinutes int) string {
	d := endMinutes - startMinutes
	if d <= 0 {
		return ""
	}
	hours, mins := d/60, d%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// FormatClock12h converts "HH:MM" to "h:MM AM/PM".
func FormatClock12h(t string) (string, error) {
	m, err := TimeToMinutes(t)
	if err != nil {
		return "", err
	}
	hour := m / 60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return strconv.Itoa(display) + ":" + t[3:5] + " " + suffix, nil
}

// OverlapMinutes calculates the overlapping minutes between two ranges.
// Returns 0 if there is no overlap.
func OverlapMinutes(start1, end1, start2, end2 int) int {
	overlapStart := max(start1, start2)
	overlapEnd := min(end1, end2)

	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// TimesOverlap reports whether two half-open minute ranges share any time.
func TimesOverlap(start1, end1, start2, end2 int) bool {
	return OverlapMinutes(start1, end1, start2, end2) > 0
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

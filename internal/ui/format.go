package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// shortID is the id prefix shown in listings. Commands accept it too.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// timeRange formats a task's time of day, or "all day" when untimed.
func timeRange(t *task.Task) string {
	s := t.Shape()
	if s.Timing != task.Timed {
		return "all day"
	}
	return task.ClampMinutesToTime(s.StartMinutes) + "-" + task.ClampMinutesToTime(s.EndMinutes)
}

// dateRange formats the task's dates, e.g. "2025-06-20" or
// "2025-06-20..2025-06-22".
func dateRange(t *task.Task) string {
	if !t.IsMultiDay() {
		return dateutil.FormatDate(t.StartDate)
	}
	return dateutil.FormatDate(t.StartDate) + ".." + dateutil.FormatDate(t.LastDate())
}

// duration returns the "1h 30m" label of a timed task.
func duration(t *task.Task) string {
	s := t.Shape()
	if s.Timing != task.Timed {
		return ""
	}
	return task.DurationLabel(s.StartMinutes, s.EndMinutes)
}

// printTaskRow prints a single task line with consistent formatting.
func printTaskRow(w io.Writer, t *task.Task, width int) {
	prefix := fmt.Sprintf("  %s  %-11s  ", formatMuted(shortID(t.ID)), timeRange(t))
	suffix := "  @" + t.Assignee
	if d := duration(t); d != "" {
		suffix += formatMuted(" (" + d + ")")
	}
	if t.IsMultiDay() {
		suffix += formatMuted(" until " + dateutil.FormatDate(t.LastDate()))
	}
	titleWidth := max(10, width-ansi.StringWidth(prefix)-ansi.StringWidth(suffix))
	fmt.Fprintf(w, "%s%s%s\n", prefix, taskColor(t.Color).Sprint(truncate(t.Title, titleWidth)), suffix)
}

// truncate shortens s to width display columns.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// pad truncates or right-pads s to exactly width display columns. s may
// already carry color codes.
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := ansi.StringWidth(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// span projects [left, right) onto whole character columns, at least one
// wide.
func span(left, right float64) (x, width int) {
	x = int(math.Round(left))
	width = max(1, int(math.Round(right))-x)
	return x, width
}

type glyph struct {
	r rune
	c *color.Color
}

// canvas is a grid of colored characters the grid view draws rects onto.
type canvas struct {
	width int
	lines [][]glyph
}

func newCanvas(width, height int) *canvas {
	cv := &canvas{width: width, lines: make([][]glyph, height)}
	for i := range cv.lines {
		cv.lines[i] = make([]glyph, width)
		for j := range cv.lines[i] {
			cv.lines[i][j] = glyph{r: ' '}
		}
	}
	return cv
}

// put writes s from column x, clipped to [lo, hi).
func (cv *canvas) put(line, x, lo, hi int, s string, c *color.Color) {
	if line < 0 || line >= len(cv.lines) {
		return
	}
	hi = min(hi, cv.width)
	for _, r := range s {
		if x >= hi {
			return
		}
		if x >= lo && x >= 0 {
			cv.lines[line][x] = glyph{r: r, c: c}
		}
		x++
	}
}

// block draws a labelled box of width columns, e.g. "[Standup ]".
func (cv *canvas) block(line, x, width, lo, hi int, label string, c *color.Color) {
	cv.put(line, x, lo, hi, boxed(label, width, '[', ']', ' '), c)
}

// boxed renders label between opening and closing markers, padded with fill.
func boxed(label string, width int, opening, closing, fill rune) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return "■"
	case width == 2:
		return string(opening) + string(closing)
	}
	inner := []rune(truncate(label, width-2))
	for len(inner) < width-2 {
		inner = append(inner, fill)
	}
	return string(opening) + string(inner) + string(closing)
}

// render returns a line with consecutive same-colored runs grouped.
func (cv *canvas) render(line int) string {
	var b, run strings.Builder
	var cur *color.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur != nil {
			b.WriteString(cur.Sprint(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for _, g := range cv.lines[line] {
		if g.c != cur {
			flush()
			cur = g.c
		}
		run.WriteRune(g.r)
	}
	flush()
	return strings.TrimRight(b.String(), " ")
}

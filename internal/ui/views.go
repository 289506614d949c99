package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
)

const (
	monthCellWidth = 16
	gridLabelWidth = 16
	minGridCell    = 12
)

// charEngine lays tasks out on a character grid: one column per axis unit
// and one line per stacked task.
func charEngine(maxVisible int) *layout.Engine {
	return layout.New(layout.Options{
		MinWidth:       1,
		RowHeight:      1,
		UntimedHeight:  1,
		MaxVisible:     maxVisible,
		DaySlotMinutes: calendar.DayViewSlotMinutes,
		DaySlotHeight:  1,
		DayMinHeight:   1,
	})
}

// gridCellWidth divides the terminal among the visible dates.
func gridCellWidth(termCols, span int) int {
	return max(minGridCell, (termCols-gridLabelWidth)/max(span, 1))
}

func monthLabel(t *task.Task) string {
	if s := t.Shape(); s.Timing == task.Timed {
		return task.ClampMinutesToTime(s.StartMinutes) + " " + t.Title
	}
	return t.Title
}

// renderMonth prints the 6x7 month calendar. Each cell lists its first
// tasks in start order and a "+N more" line for the rest.
func renderMonth(w io.Writer, eng *layout.Engine, anchor, today time.Time, tasks []*task.Task, member string) {
	days := calendar.BuildMonthGrid(anchor, today)
	maxVisible := eng.Options().MaxVisible
	sep := strings.Repeat("─", 7*monthCellWidth+6)

	fmt.Fprintln(w, formatHeader(calendar.MonthTitle(anchor)))
	headers := make([]string, 7)
	for i, h := range calendar.WeekdayHeaders {
		headers[i] = pad(h, monthCellWidth)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(headers, " "), " "))
	fmt.Fprintln(w, sep)

	for week := 0; week < len(days)/7; week++ {
		row := days[week*7 : week*7+7]

		visible := make([][]*task.Task, 7)
		overflow := make([]int, 7)
		lines, anyOverflow := 0, false
		nums := make([]string, 7)
		for i, d := range row {
			vis, over := eng.VisibleAndOverflow(layout.TasksForDate(tasks, d.Date, member), maxVisible)
			visible[i], overflow[i] = vis, len(over)
			lines = max(lines, len(vis))
			anyOverflow = anyOverflow || len(over) > 0

			num := fmt.Sprintf("%2d", d.Date.Day())
			switch {
			case d.IsToday:
				num = formatToday(num + " today")
			case !d.IsCurrentMonth:
				num = formatMuted(num)
			}
			nums[i] = pad(num, monthCellWidth)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(nums, " "), " "))

		for line := 0; line < lines; line++ {
			cells := make([]string, 7)
			for i := range row {
				cells[i] = pad("", monthCellWidth)
				if line < len(visible[i]) {
					t := visible[i][line]
					cells[i] = pad(taskColor(t.Color).Sprint(truncate(monthLabel(t), monthCellWidth)), monthCellWidth)
				}
			}
			fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
		}
		if anyOverflow {
			cells := make([]string, 7)
			for i := range row {
				cells[i] = pad("", monthCellWidth)
				if overflow[i] > 0 {
					cells[i] = pad(formatMuted(fmt.Sprintf("+%d more", overflow[i])), monthCellWidth)
				}
			}
			fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
		}
		fmt.Fprintln(w, sep)
	}
}

// renderGrid prints a computed window layout, one block of lines per row.
// res must come from an engine whose units are characters.
func renderGrid(w io.Writer, res layout.Result, days []calendar.Day, cellChars int) {
	n := len(days)
	total := gridLabelWidth + n*cellChars

	dates := make([]string, n)
	for i, d := range days {
		label := d.Date.Format("Mon Jan 2")
		if d.IsToday {
			label = formatToday(label)
		}
		dates[i] = pad(label, cellChars)
	}
	fmt.Fprintln(w, strings.TrimRight(pad("", gridLabelWidth)+strings.Join(dates, ""), " "))

	header := newCanvas(total, 1)
	for i, d := range days {
		base := gridLabelWidth + i*cellChars
		next := base
		for _, slot := range d.Slots {
			x := base + int(task.MinutesToPosition(slot.Start, task.MinutesPerDay, float64(cellChars)))
			label := slot.ShortLabel
			if x < next || x+len(label) > base+cellChars {
				continue
			}
			header.put(0, x, base, base+cellChars, label, colorMuted)
			next = x + len(label) + 1
		}
	}
	fmt.Fprintln(w, header.render(0))
	fmt.Fprintln(w, strings.Repeat("─", total))

	for _, rl := range res.Rows {
		height := max(1, int(math.Ceil(rl.Height)))
		cv := newCanvas(total, height)
		cv.put(0, 0, 0, gridLabelWidth-1, truncate(rl.Row.Label, gridLabelWidth-1), colorHeader)

		for _, bar := range rl.Bars {
			r := bar.Rect.ToPixels(float64(n * cellChars))
			x, width := span(r.Left, r.Right())
			opening, closing := '[', ']'
			if bar.ClippedStart {
				opening = '<'
			}
			if bar.ClippedEnd {
				closing = '>'
			}
			cv.put(int(bar.Top), gridLabelWidth+x, gridLabelWidth, total,
				boxed(bar.Task.Title, width, opening, closing, '='), taskColor(bar.Task.Color))
		}

		for i, cell := range rl.Cells {
			base := gridLabelWidth + i*cellChars
			for _, item := range cell.Items {
				x, width := span(item.Rect.Left, item.Rect.Right())
				cv.block(int(item.Rect.Top), base+x, width, base, base+cellChars, item.Task.Title, taskColor(item.Task.Color))
			}
		}

		for line := range height {
			fmt.Fprintln(w, cv.render(line))
		}
	}
}

// dayRange is the default span of the day view, widened to fit the tasks.
const (
	dayViewFrom = 8 * 60
	dayViewTo   = 18 * 60
)

// renderDay prints the day view: untimed tasks first, then one line per
// slot with the tasks that start in it or continue through it.
func renderDay(w io.Writer, eng *layout.Engine, date time.Time, tasks []*task.Task, member string) error {
	opts := eng.Options()
	slots, err := calendar.BuildDaySlots(date, opts.DaySlotMinutes)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, formatHeader(date.Format("Monday, January 2, 2006")))
	dayTasks := layout.SortByStart(layout.TasksForDate(tasks, date, member))
	if len(dayTasks) == 0 {
		fmt.Fprintln(w, formatMuted("No tasks scheduled."))
		return nil
	}

	var timed []*task.Task
	from, to := dayViewFrom/opts.DaySlotMinutes, dayViewTo/opts.DaySlotMinutes-1
	for _, t := range dayTasks {
		r, ok := eng.PositionDayViewTask(t)
		if !ok {
			fmt.Fprintf(w, "  %-10s │ %s  @%s\n", "all day", taskColor(t.Color).Sprint(t.Title), t.Assignee)
			continue
		}
		first := int(r.Top / opts.DaySlotHeight)
		last := max(first, int(math.Ceil((r.Top+r.Height)/opts.DaySlotHeight))-1)
		timed = append(timed, t)
		from, to = min(from, first), max(to, last)
	}

	for i := from; i <= to && i < len(slots); i++ {
		slot := slots[i]
		label, _ := task.FormatClock12h(slot.Label)
		if !slot.IsHourMark {
			label = ""
		}
		var entries []string
		for _, t := range layout.TasksForSlot(timed, date, slot.Start, slot.End) {
			if t.Shape().StartMinutes >= slot.Start {
				entries = append(entries, fmt.Sprintf("■ %s %s %s",
					taskColor(t.Color).Sprint(t.Title),
					formatMuted(timeRange(t)),
					formatMuted(duration(t))))
				continue
			}
			entries = append(entries, taskColor(t.Color).Sprint("┃ "+t.Title))
		}
		fmt.Fprintf(w, "  %10s │ %s\n", label, strings.Join(entries, "  "))
	}
	return nil
}

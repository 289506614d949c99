package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/dragdrop"
	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
)

// View renders the model.
func (m Model) View() string {
	helpView := m.renderHelp()
	bodyHeight := max(1, m.height-chromeLines-(lipgloss.Height(helpView)-1))

	sections := []string{m.renderTitle()}
	sections = append(sections, m.renderHeader()...)
	sections = append(sections, m.renderBody(bodyHeight)...)
	sections = append(sections, m.renderFooter(), helpView)

	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(sections, "\n"))
}

func (m Model) renderTitle() string {
	state := m.zoom.State()
	title := m.styles.TitleStyle.Render("crewgrid") + "  " +
		m.styles.DateHeaderStyle.Render(calendar.WindowTitle(m.result.Window)) + "  " +
		m.styles.ZoomStyle.Render(fmt.Sprintf("%d min columns, %d days", state.Granularity, state.DateSpan))
	if m.loading {
		title += m.styles.ZoomStyle.Render("  loading…")
	}
	return title
}

func (m Model) gridWidth() int {
	return labelWidth + len(m.result.Window)*m.cellWidth()
}

// compose renders a canvas line as the fixed label column followed by the
// scrolled part of the grid.
func (m Model) compose(cv *canvas, line int) string {
	offset, visible := m.viewport()
	return cv.renderRange(line, 0, labelWidth) + cv.renderRange(line, labelWidth+offset, labelWidth+offset+visible)
}

// renderHeader returns the date line, the time label line and a separator.
func (m Model) renderHeader() []string {
	cw := m.cellWidth()
	cv := newCanvas(m.gridWidth(), 3)
	dateStyle := cv.style(m.styles.DateHeaderStyle)
	todayStyle := cv.style(m.styles.TodayStyle)
	timeStyle := cv.style(m.styles.TimeLabelStyle)
	sepStyle := cv.style(m.styles.SeparatorStyle)

	today := m.today()
	showAll := m.settings().ShowAllLabels
	for i, d := range m.result.Window {
		base := labelWidth + i*cw
		st := dateStyle
		if dateutil.SameDay(d, today) {
			st = todayStyle
		}
		cv.put(0, base, base, base+cw-1, ansi.Truncate(d.Format("Mon Jan 2"), cw-1, "…"), st)

		next := base
		for _, slot := range m.zoom.State().Columns() {
			if !showAll && !slot.IsMajorMark {
				continue
			}
			x := base + int(task.MinutesToPosition(slot.Start, task.MinutesPerDay, float64(cw)))
			if x < next || x+len(slot.ShortLabel) > base+cw-1 {
				continue
			}
			cv.put(1, x, base, base+cw, slot.ShortLabel, timeStyle)
			next = x + len(slot.ShortLabel) + 1
		}
	}
	cv.fill(2, 0, cv.width, '─', sepStyle)

	return []string{m.compose(cv, 0), m.compose(cv, 1), m.compose(cv, 2)}
}

// renderBody draws every grid line and returns the ones that fit in height,
// scrolled so the cursor line is visible.
func (m Model) renderBody(height int) []string {
	var out []string
	cursorStart, cursorEnd := 0, 0
	for i, l := range m.lines() {
		if i == m.cursor.Line {
			cursorStart = len(out)
		}
		out = append(out, m.renderLine(i, l)...)
		if i == m.cursor.Line {
			cursorEnd = len(out)
		}
	}
	if len(out) == 0 {
		return []string{m.styles.DetailStyle.Render("No team members. Add one with 'crewgrid team add'.")}
	}

	offset := 0
	if cursorEnd > height {
		offset = min(cursorStart, cursorEnd-height)
	}
	end := min(len(out), offset+height)
	return out[offset:end]
}

// blockKindOf picks how a task block is shaded.
func (m Model) blockKindOf(t, selected *task.Task) blockKind {
	if g := m.gesture; g != nil {
		switch t {
		case g.preview:
			return blockPreview
		case g.origin:
			return blockOrigin
		}
		return blockNormal
	}
	if t == selected {
		return blockSelected
	}
	return blockNormal
}

// activeCell is the cell to highlight: the drop cell during a move, the
// cursor otherwise.
func (m Model) activeCell() (line, day int) {
	if g := m.gesture; g != nil && g.kind() == dragdrop.Move {
		return g.line, g.day
	}
	return m.cursor.Line, m.cursor.Day
}

func (m Model) renderLine(index int, l gridLine) []string {
	cw := m.cellWidth()
	total := m.gridWidth()
	cv := newCanvas(total, l.Height())

	labelStyle := m.styles.RowLabelStyle
	if index == m.cursor.Line {
		labelStyle = m.styles.RowLabelCursorStyle
	}
	cv.put(0, 0, 0, labelWidth-1, ansi.Truncate(l.Label(), labelWidth-1, "…"), cv.style(labelStyle))

	sep := cv.style(m.styles.EmptyCellStyle)
	for i := range m.result.Window {
		for line := range l.Height() {
			cv.put(line, labelWidth+i*cw+cw-1, 0, total, "│", sep)
		}
	}
	if activeLine, activeDay := m.activeCell(); activeLine == index {
		base := labelWidth + activeDay*cw
		cv.tint(base, base+cw-1, cv.style(m.styles.CursorCellStyle))
	}

	if l.Row == nil {
		m.paintSummary(cv, l)
	} else {
		m.paintRow(cv, l.Row)
	}

	lines := make([]string, l.Height())
	for i := range lines {
		lines[i] = m.compose(cv, i)
	}
	return lines
}

// paintSummary fills a collapsed member's line with task counts per day.
func (m Model) paintSummary(cv *canvas, l gridLine) {
	cw := m.cellWidth()
	group := cv.style(m.styles.GroupStyle)
	count := cv.style(m.styles.CountStyle)
	cv.tint(labelWidth, cv.width, group)
	for i, c := range l.Group.DailyCounts(m.tasks, m.result.Window) {
		if c == 0 {
			continue
		}
		label := strconv.Itoa(c) + " task"
		if c > 1 {
			label += "s"
		}
		base := labelWidth + i*cw
		cv.put(0, base+1, base, base+cw-1, label, count)
	}
}

// paintRow draws the bars and cell tasks of an instance row.
func (m Model) paintRow(cv *canvas, rl *layout.RowLayout) {
	cw := m.cellWidth()
	total := cv.width
	selected := m.selectedTask()
	styleOf := func(t *task.Task) int {
		return cv.style(m.styles.Block(t.Color, m.blockKindOf(t, selected)))
	}

	for _, bar := range rl.Bars {
		r := bar.Rect.ToPixels(float64(len(m.result.Window) * cw))
		x, width := span(r.Left, r.Right())
		label := bar.Task.Title
		if bar.ClippedStart {
			label = "◂ " + label
		}
		if bar.ClippedEnd {
			label += " ▸"
		}
		cv.block(int(bar.Top), labelWidth+x, width, labelWidth, total, label, styleOf(bar.Task))
	}

	for i, cell := range rl.Cells {
		base := labelWidth + i*cw
		for _, item := range cell.Items {
			x, width := span(item.Rect.Left, item.Rect.Right())
			cv.block(int(item.Rect.Top), base+x, width, base, base+cw-1, item.Task.Title, styleOf(item.Task))
		}
	}
}

func (m Model) renderFooter() string {
	if g := m.gesture; g != nil {
		badge := m.styles.ModeStyle.Render(strings.ToUpper(g.kind().String()))
		return badge + " " + m.styles.StatusStyle.Render(g.origin.Title+" → "+m.proposalLabel())
	}
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.StatusErrorStyle.Render(m.statusMsg)
		}
		return m.styles.StatusStyle.Render(m.statusMsg)
	}
	if t := m.selectedTask(); t != nil {
		return m.styles.DetailStyle.Render(describe(t))
	}
	return ""
}

// describe is the one-line summary of a task shown in the footer.
func describe(t *task.Task) string {
	parts := []string{t.Title, "@" + t.Assignee, dateutil.FormatDate(t.StartDate)}
	if t.IsMultiDay() {
		parts[2] += ".." + dateutil.FormatDate(t.LastDate())
	}
	if s := t.Shape(); s.Timing == task.Timed {
		parts = append(parts, task.ClampMinutesToTime(s.StartMinutes)+"-"+task.ClampMinutesToTime(s.EndMinutes),
			task.DurationLabel(s.StartMinutes, s.EndMinutes))
	} else {
		parts = append(parts, "all day")
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	if m.mode == ModeDrag {
		return m.help.View(dragHelp(m.keys))
	}
	return m.help.View(m.keys)
}

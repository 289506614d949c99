package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// glyph is one terminal cell: a rune and an index into the canvas styles.
// Style 0 is unstyled.
type glyph struct {
	r     rune
	style int
}

// canvas is a fixed-size block of terminal cells that styled text is
// painted onto before being rendered line by line.
type canvas struct {
	width  int
	lines  [][]glyph
	styles []lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([][]glyph, height), styles: []lipgloss.Style{lipgloss.NewStyle()}}
	for i := range c.lines {
		row := make([]glyph, width)
		for x := range row {
			row[x] = glyph{r: ' '}
		}
		c.lines[i] = row
	}
	return c
}

// style registers st and returns its index.
func (c *canvas) style(st lipgloss.Style) int {
	c.styles = append(c.styles, st)
	return len(c.styles) - 1
}

// put writes s at (line, x), dropping runes outside [lo, hi) and the canvas.
func (c *canvas) put(line, x, lo, hi int, s string, style int) {
	if line < 0 || line >= len(c.lines) {
		return
	}
	hi = min(hi, c.width)
	for _, r := range s {
		if x >= lo && x < hi {
			c.lines[line][x] = glyph{r: r, style: style}
		}
		x++
	}
}

// fill paints [lo, hi) of a line with r.
func (c *canvas) fill(line, lo, hi int, r rune, style int) {
	if lo >= hi {
		return
	}
	c.put(line, lo, lo, hi, strings.Repeat(string(r), hi-lo), style)
}

// tint restyles the blank cells of [lo, hi) on every line.
func (c *canvas) tint(lo, hi, style int) {
	hi = min(hi, c.width)
	for _, row := range c.lines {
		for x := max(lo, 0); x < hi; x++ {
			if row[x].style == 0 {
				row[x].style = style
			}
		}
	}
}

// block paints a task block of width cells starting at x, clipped to
// [lo, hi), with label left-aligned inside it.
func (c *canvas) block(line, x, width, lo, hi int, label string, style int) {
	c.put(line, x, lo, hi, blockText(label, width), style)
}

// render returns one line with its styles applied.
func (c *canvas) render(line int) string {
	return c.renderRange(line, 0, c.width)
}

// renderRange returns the cells [lo, hi) of a line with their styles
// applied.
func (c *canvas) renderRange(line, lo, hi int) string {
	lo, hi = max(lo, 0), min(hi, c.width)
	if lo >= hi {
		return ""
	}
	row := c.lines[line][lo:hi]
	var b strings.Builder
	start := 0
	for x := 1; x <= len(row); x++ {
		if x < len(row) && row[x].style == row[start].style {
			continue
		}
		run := make([]rune, 0, x-start)
		for _, g := range row[start:x] {
			run = append(run, g.r)
		}
		if id := row[start].style; id == 0 {
			b.WriteString(string(run))
		} else {
			b.WriteString(c.styles[id].Render(string(run)))
		}
		start = x
	}
	return b.String()
}

// blockText fits label into a block width cells wide.
func blockText(label string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return "▌"
	}
	label = ansi.Truncate(label, width-1, "…")
	return " " + label + strings.Repeat(" ", max(0, width-1-ansi.StringWidth(label)))
}

// span rounds a fractional [left, right) range to whole cells, at least one
// wide.
func span(left, right float64) (x, width int) {
	x = int(math.Round(left))
	return x, max(1, int(math.Round(right))-x)
}

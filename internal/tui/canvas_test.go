package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBlockText(t *testing.T) {
	tests := []struct {
		label string
		width int
		want  string
	}{
		{"Standup", 0, ""},
		{"Standup", 1, "▌"},
		{"Standup", 4, " St…"},
		{"Standup", 10, " Standup  "},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := blockText(tt.label, tt.width); got != tt.want {
			t.Errorf("blockText(%q, %d) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		left, right float64
		x, width    int
	}{
		{1.4, 3.6, 1, 3},
		{2.2, 2.3, 2, 1},
		{0, 50, 0, 50},
	}

	for _, tt := range tests {
		x, width := span(tt.left, tt.right)
		if x != tt.x || width != tt.width {
			t.Errorf("span(%v, %v) = (%d, %d), want (%d, %d)", tt.left, tt.right, x, width, tt.x, tt.width)
		}
	}
}

func TestCanvas_Put(t *testing.T) {
	c := newCanvas(10, 1)
	c.put(0, 3, 4, 6, "abcdef", 0)
	c.put(1, 0, 0, 10, "ignored", 0)

	if got := c.render(0); got != "    bc    " {
		t.Errorf("render = %q", got)
	}
	if got := c.renderRange(0, 4, 6); got != "bc" {
		t.Errorf("renderRange(4, 6) = %q", got)
	}
	if got := c.renderRange(0, 8, 20); got != "  " {
		t.Errorf("renderRange past the edge = %q", got)
	}
	if got := c.renderRange(0, 5, 5); got != "" {
		t.Errorf("empty range = %q", got)
	}
}

func TestCanvas_Fill(t *testing.T) {
	c := newCanvas(10, 1)
	c.fill(0, 2, 5, '─', 0)
	c.fill(0, 7, 7, 'x', 0)

	if got := c.render(0); got != "  ───     " {
		t.Errorf("render = %q", got)
	}
}

func TestCanvas_TintSkipsStyled(t *testing.T) {
	c := newCanvas(5, 2)
	text := c.style(lipgloss.NewStyle())
	bg := c.style(lipgloss.NewStyle())
	c.put(0, 0, 0, 5, "x", text)
	c.tint(0, 3, bg)

	if got := c.lines[0][0].style; got != text {
		t.Errorf("styled cell restyled to %d", got)
	}
	for _, x := range []int{1, 2} {
		if got := c.lines[0][x].style; got != bg {
			t.Errorf("cell %d style = %d, want %d", x, got, bg)
		}
	}
	if got := c.lines[1][0].style; got != bg {
		t.Error("tint should cover every line")
	}
	if got := c.lines[0][3].style; got != 0 {
		t.Error("tint should stop at hi")
	}
}

func TestCanvas_Block(t *testing.T) {
	c := newCanvas(12, 1)
	c.block(0, 2, 8, 0, 6, "Review", 0)

	if got := c.render(0); got != "   Rev      " {
		t.Errorf("render = %q", got)
	}
}

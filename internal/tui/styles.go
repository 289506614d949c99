package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/crewgrid/internal/tui/theme"
)

// blockKind selects how a task block is shaded.
type blockKind int

const (
	blockNormal   blockKind = iota
	blockSelected           // Under the cursor
	blockOrigin             // Where a dragged task came from
	blockPreview            // Where a dragged task would land
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle      lipgloss.Style
	ZoomStyle       lipgloss.Style
	DateHeaderStyle lipgloss.Style
	TodayStyle      lipgloss.Style
	TimeLabelStyle  lipgloss.Style
	SeparatorStyle  lipgloss.Style

	RowLabelStyle       lipgloss.Style
	RowLabelCursorStyle lipgloss.Style
	GroupStyle          lipgloss.Style // Collapsed group summary line
	CountStyle          lipgloss.Style

	EmptyCellStyle  lipgloss.Style
	CursorCellStyle lipgloss.Style

	ModeStyle        lipgloss.Style
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	DetailStyle      lipgloss.Style

	blocks map[blockKey]lipgloss.Style
}

type blockKey struct {
	tag  string
	kind blockKind
}

// NewStyles builds the style set for a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, blocks: make(map[blockKey]lipgloss.Style)}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.ZoomStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.DateHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Fg)
	s.TodayStyle = s.DateHeaderStyle.Foreground(p.Today)
	s.TimeLabelStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.SeparatorStyle = lipgloss.NewStyle().Foreground(p.BgSelection)

	s.RowLabelStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.RowLabelCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent)
	s.GroupStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgHighlight)
	s.CountStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.BgHighlight)

	s.EmptyCellStyle = lipgloss.NewStyle().Foreground(p.BgSelection)
	s.CursorCellStyle = lipgloss.NewStyle().Background(p.BgSelection)

	s.ModeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(p.TextOnWarning).Background(p.Warning)
	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.StatusErrorStyle = lipgloss.NewStyle().Foreground(p.Warning)
	s.DetailStyle = lipgloss.NewStyle().Foreground(p.FgMuted)

	return s
}

// Block returns the style for a task block with color tag.
func (s *Styles) Block(tag string, kind blockKind) lipgloss.Style {
	key := blockKey{tag: tag, kind: kind}
	if st, ok := s.blocks[key]; ok {
		return st
	}

	c := s.palette.Task(tag)
	var st lipgloss.Style
	switch kind {
	case blockSelected:
		st = lipgloss.NewStyle().Bold(true).Foreground(c.Fg2).Background(c.BgAlt)
	case blockOrigin:
		st = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.Original)).Background(c.BgMuted)
	case blockPreview:
		st = lipgloss.NewStyle().Bold(true).Foreground(s.palette.TextOnWarning).Background(s.palette.Warning)
	default:
		st = lipgloss.NewStyle().Foreground(c.Fg).Background(c.Bg)
	}
	s.blocks[key] = st
	return st
}

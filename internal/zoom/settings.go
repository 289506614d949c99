package zoom

// sidebarWidth is the screen width reserved for the resource column.
const sidebarWidth = 250

// Settings are the rendering hints for a zoom level.
type Settings struct {
	Granularity   int
	CellWidth     float64 // width of one date column
	ShowAllLabels bool    // label every time column, not only major marks
}

// ResponsiveSettings returns the cell width for a zoom level, with every
// time label shown at 30 and 60 minute columns.
func ResponsiveSettings(granularity, span int, screenWidth float64) Settings {
	return Settings{
		Granularity:   granularity,
		CellWidth:     CellWidth(granularity, span, screenWidth),
		ShowAllLabels: granularity == 30 || granularity == 60,
	}
}

// CellWidth sizes a date column so the finer granularities get more room.
// Unknown granularities fall back to the 6-hour rule.
func CellWidth(granularity, span int, screenWidth float64) float64 {
	avail := screenWidth - sidebarWidth
	span = max(span, 1)

	switch granularity {
	case 30:
		return max(1200, avail/float64(max(1, span-3)))
	case 60:
		return max(800, avail/float64(max(1, span-1)))
	case 120:
		return max(600, avail/float64(span))
	case 240:
		return max(400, avail/float64(span))
	default:
		return max(300, avail/float64(span))
	}
}

// Settings returns the rendering hints for the current state.
func (c *Controller) Settings(screenWidth float64) Settings {
	return ResponsiveSettings(c.state.Granularity, c.state.DateSpan, screenWidth)
}

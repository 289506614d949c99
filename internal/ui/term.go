package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	colorHeader = color.New(color.Bold)
	colorToday  = color.New(color.FgYellow, color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorWarn   = color.New(color.FgRed)
	colorOK     = color.New(color.FgGreen)
)

// taskColors maps a task's color tag to its terminal color.
var taskColors = map[string]*color.Color{
	"blue":   color.New(color.FgBlue),
	"green":  color.New(color.FgGreen),
	"red":    color.New(color.FgRed),
	"yellow": color.New(color.FgYellow),
	"purple": color.New(color.FgMagenta),
	"pink":   color.New(color.FgHiMagenta),
	"orange": color.New(color.FgHiRed),
	"teal":   color.New(color.FgCyan),
	"gray":   color.New(color.FgHiBlack),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func taskColor(name string) *color.Color {
	if c, ok := taskColors[strings.ToLower(name)]; ok {
		return c
	}
	return taskColors["blue"]
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

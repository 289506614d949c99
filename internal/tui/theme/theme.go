// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// TaskColorNames lists the color tags a task may carry, in picker order.
var TaskColorNames = []string{"blue", "green", "red", "yellow", "purple", "pink", "orange", "teal", "gray"}

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Group rows, header band
	BgSelection string `toml:"bg_selection"` // Cursor cell
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // Time labels, empty cells
	Accent      string `toml:"accent"`   // Title, borders, untagged tasks
	Today       string `toml:"today"`
	Warning     string `toml:"warning"` // Drag preview, errors

	// Colors maps task color tags to hex values.
	Colors map[string]string `toml:"colors"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// TaskColor returns the hex value for a task color tag. Unknown and empty
// tags use the accent color.
func (t *Theme) TaskColor(tag string) string {
	if hex, ok := t.Colors[strings.ToLower(tag)]; ok {
		return hex
	}
	return t.Accent
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Today = coalesce(t.Today, t.Accent)
	t.Warning = coalesce(t.Warning, t.Accent)
	if t.Colors == nil {
		t.Colors = make(map[string]string)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

// Package ui provides the visual styling and interactive menu for the grow CLI.
package ui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Garden palette
var (
	LightForeground = lipgloss.Color("#1b2e1f") // Deep soil green
	LightPrimary    = lipgloss.Color("#2e7d32") // Leaf green
	LightAccent     = lipgloss.Color("#8BC34A") // Lime sprout
	LightMuted      = lipgloss.Color("#6b7a6e")

	DarkForeground = lipgloss.Color("#eef3ea")
	DarkPrimary    = lipgloss.Color("#8BC34A")
	DarkAccent     = lipgloss.Color("#c5e1a5")
	DarkMuted      = lipgloss.Color("#8a998c")

	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Warning     = lipgloss.Color("#FFC107") // Harvest yellow
	Info        = lipgloss.Color("#2196F3") // Blue
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from COLORFGBG and GROW_DARK_MODE, defaulting to light.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; backgrounds 0-6 and 8 are dark.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	if os.Getenv("GROW_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeByName resolves the ui.theme config value.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates styles for theme bound to the terminal behind w.
// Writers that are not terminals get plain text.
func NewStyles(theme Theme, w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Theme: theme,

		Title: r.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Header: r.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: r.NewStyle().
			Foreground(theme.Foreground),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Bold: r.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Selected: r.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Cursor: r.NewStyle().
			Foreground(theme.Accent),

		Success: r.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: r.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: r.NewStyle().
			Foreground(Info),
	}
}

// Painter adapts Styles to the runner's text decoration hooks.
type Painter struct {
	Styles Styles
}

func (p Painter) Title(text string) string   { return p.Styles.Title.Render(text) }
func (p Painter) Header(text string) string  { return p.Styles.Header.Render(text) }
func (p Painter) Failure(text string) string { return p.Styles.Error.Render(text) }
func (p Painter) Hint(text string) string    { return p.Styles.Muted.Render(text) }

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderDoc renders exercise Markdown for the terminal. style is a glamour
// standard style name ("dark", "light", "notty", ...) or "auto".
func RenderDoc(markdown, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// When rich is false, or the renderer cannot be built, markdown is returned as is.
func NewRenderer(rich bool, width int) func(string) (string, error) {
	plain := func(markdown string) (string, error) { return markdown, nil }
	if !rich {
		return plain
	}

	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders step intros (markdown) using glamour.
// When the terminal style cannot be detected the markdown is returned as is.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer leaves markdown untouched.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}

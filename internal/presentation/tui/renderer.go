package tui

import (
	"github.com/aretw0/wayfinder"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a markdown renderer for recommendations. It falls
// back to the raw markdown if glamour cannot be initialized.
func NewRenderer(width int) wayfinder.ContentRenderer {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return PlainRenderer
	}
	return r.Render
}

// PlainRenderer returns the markdown unchanged.
func PlainRenderer(md string) (string, error) {
	return md, nil
}

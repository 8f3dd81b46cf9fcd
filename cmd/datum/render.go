package main

import (
	"github.com/charmbracelet/glamour"
)

// newRenderer returns a function that renders markdown using glamour.
// The demo report falls back to raw markdown when rendering fails.
func newRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) string { return markdown }
	}
	return func(markdown string) string {
		out, rerr := r.Render(markdown)
		if rerr != nil {
			return markdown
		}
		return out
	}
}

// Package logging provides the default diagnostic sink for datum containers.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a configured diagnostic logger. It writes to Stderr so that
// container output on Stdout stays clean, and standardizes the "error" key
// to "err".
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger. Containers default to it so swallowed
// watcher failures stay silent unless a sink is injected.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

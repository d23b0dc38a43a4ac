// Package logging builds the process logger the same way for every binary.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// New returns a colourised logger in development and a JSON one otherwise.
// Colours are only emitted when w is a terminal.
func New(w io.Writer, development bool, level slog.Level) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	if development {
		handler = tint.NewHandler(w, &tint.Options{
			Level:   level,
			NoColor: !isTerminal(w),
		})
	}
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

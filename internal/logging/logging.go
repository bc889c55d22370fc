// Package logging builds the slog.Logger used for diagnostics. Diagnostics
// share stderr with the failure object, so they are off unless requested.
package logging

import (
	"io"
	"log/slog"
)

// New returns a debug-level text logger writing to w when verbose is set, and
// a logger that discards everything otherwise.
func New(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

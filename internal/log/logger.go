package log

import (
	"io"
	"log/slog"
)

// Level returns the minimum log level for the given verbosity.
// Verbose mode logs everything down to Debug; otherwise only Warn and above.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text slog.Logger writing to w.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: Level(verbose),
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

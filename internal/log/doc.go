// Package log builds the structured logger used by ilmt-transform, on top of
// the standard slog package.
//
// Diagnostics go to stderr through slog so that they never mix with the
// progress lines printed on stdout or with the generated files. Only warnings
// and errors are shown unless verbose mode is enabled.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("output written", "path", path, "bytes", n)
package log

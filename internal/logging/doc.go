// Package logging assembles structured slog loggers and formatting helpers
// used across nfog.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that tag log lines with the correlation ID of a generate
// run. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
package logging

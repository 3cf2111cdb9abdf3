// Package logging assembles structured slog loggers and formatting helpers
// used across lyricdeck components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can
// automatically tag log lines with track names and stages. The console
// handler serializes writes, so concurrent batch workers share one sink
// without interleaving lines. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging

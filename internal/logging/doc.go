// Package logging assembles structured slog loggers and formatting helpers used
// across the enrichment run.
//
// It owns the configurable console/JSON handlers, routes records by level
// (progress to stdout, warnings and errors to stderr), and exposes
// context-aware helpers so lookup code can automatically tag log lines with the
// run identifier, record key and lookup step. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging

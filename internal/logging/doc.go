// Package logging assembles the structured slog loggers used across the
// resolution engine.
//
// It centralizes level parsing and handler selection, exposes typed attribute
// helpers so components emit consistently shaped fields, and provides a no-op
// logger for tests and wiring code that cannot fail.
package logging

// Package logging assembles structured slog loggers and formatting helpers used
// across prproj.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes helpers that keep warning records in one shape:
// an event type, a hint for the reader, and the impact on the result. A
// no-op logger is provided for tests and library callers that do not care
// about diagnostics.
package logging

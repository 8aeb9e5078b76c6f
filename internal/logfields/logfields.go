// Package logfields holds the canonical slog attribute keys used across docmark.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySource     = "source"
	KeyLine       = "line"
	KeyReference  = "reference"
	KeyBackend    = "backend"
	KeyFormat     = "format"
	KeyOutput     = "output"
	KeyWorkers    = "workers"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Source(name string) slog.Attr    { return slog.String(KeySource, name) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Reference(name string) slog.Attr { return slog.String(KeyReference, name) }
func Backend(name string) slog.Attr   { return slog.String(KeyBackend, name) }
func Format(name string) slog.Attr    { return slog.String(KeyFormat, name) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

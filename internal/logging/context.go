package logging

import (
	"context"
	"log/slog"
)

type scanIDKey struct{}

// WithScanID stores the catalog scan identifier on ctx.
func WithScanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, scanIDKey{}, id)
}

// ScanIDFromContext returns the scan identifier stored by WithScanID.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(scanIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := ScanIDFromContext(ctx); ok {
		return logger.With(String(FieldScanID, id))
	}
	return logger
}

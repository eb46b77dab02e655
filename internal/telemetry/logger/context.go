// Package logger provides structured logging for process-sentinel.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "sentinel.logger"
	// occasionIDKey is the context key for the termination occasion id.
	occasionIDKey contextKey = "sentinel.occasion_id"
	// componentKey is the context key for the originating component.
	componentKey contextKey = "sentinel.component"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithOccasionID tags the context with a termination occasion id.
// Cleanup handlers receive their context already tagged this way.
func WithOccasionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, occasionIDKey, id)
}

// OccasionIDFromContext extracts the occasion id from context.
func OccasionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(occasionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithComponent tags the context with the name of the component doing
// the logging.
func WithComponent(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, componentKey, name)
}

// ComponentFromContext extracts the component name from context.
func ComponentFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(componentKey).(string); ok {
		return name
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger with
// the occasion id and component from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := OccasionIDFromContext(ctx); id != "" {
		l = l.With("occasion_id", id)
	}

	if name := ComponentFromContext(ctx); name != "" {
		l = l.With("component", name)
	}

	return l
}

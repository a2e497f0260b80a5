// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through context.Context.
//
// Records are emitted as JSON. Components derive child loggers with
// logger.With("component", name) rather than creating their own handlers.
package logger

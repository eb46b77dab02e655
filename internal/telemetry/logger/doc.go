// Package logger provides structured logging for process-sentinel.
//
// It wraps the standard library log/slog behind a small interface:
//
//   - logger.go: handler setup, level control, default instance
//   - context.go: context helpers carrying the occasion id
//
// Output is JSON to stderr by default; a text format and a
// size-rotated log file are available through Config.
//
// @req RQ-0403
// @design DS-0402
package logger

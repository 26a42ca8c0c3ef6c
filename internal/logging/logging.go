package logging

import (
	"io"
	"log/slog"
)

// Verbose reports whether debug logging is enabled.
var Verbose bool

var logger = slog.Default()

// Setup configures the debug logger. When verbose is false, debug-level
// records are dropped. When jsonFormat is true, records are emitted as JSON.
func Setup(verbose, jsonFormat bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger = slog.New(handler)
}

// Debug logs a debug-level message with structured attributes.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info-level message with structured attributes.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning-level message with structured attributes.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

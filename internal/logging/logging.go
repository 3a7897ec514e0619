package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger and sets it as the default.
// format is "text" (development, with source locations) or "json" (production).
func New(format, level string) *slog.Logger {
	logger := NewWithWriter(os.Stdout, format, level)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter builds a logger without touching the default; tests use it to capture output.
func NewWithWriter(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

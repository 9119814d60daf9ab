// Package logging configures the application-wide slog logger. The TUI owns
// the terminal, so logs go to a file under the state directory instead of
// stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Init initializes the default logger writing to dir/blocksim.log.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func Init(dir, level, format string) (*slog.Logger, error) {
	f, err := os.OpenFile(filepath.Join(dir, "blocksim.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logger := New(f, level, format)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a logger writing to w with the given level and format.
func New(w io.Writer, level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Package logging writes structured JSON logs to a file. The TUI owns the
// terminal, so nothing may log to stdout.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/andy/billfold/internal/config"
)

// Open creates a JSON slog logger appending to the configured log file.
// The returned file must be closed by the caller on shutdown.
func Open(cfg config.LogConfig) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	log := slog.New(slog.NewJSONHandler(f, opts))
	return log, f, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

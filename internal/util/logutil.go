// Package util carries jmcc's ambient, cross-cutting concerns —
// logging setup today — the way the teacher's util package does for
// its own CLIs.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures slog from an explicit level string (normally a
// CLI flag) falling back to the LOG_LEVEL environment variable, then
// to info. Supported levels: debug, info, warn, error.
func InitSlog(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init; tests rely on the text default
var Log = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init switches to JSON on stdout. LOG_LEVEL accepts debug, info, warn or error.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
	Log = slog.New(handler).With("service", "skillmatch-api")
	slog.SetDefault(Log)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

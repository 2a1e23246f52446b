package slogger

import (
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// SetLevel adjusts the process-wide log level, e.g. from configuration.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// New returns a logger tagged with the owning module name.
func New(name string) *slog.Logger {
	return slog.Default().With(slog.String("module", name))
}

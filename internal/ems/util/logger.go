package util

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

func InitLogger() {
	InitLoggerWithLevel(slog.LevelInfo)
}

// InitLoggerWithLevel installs a JSON logger on stdout as the slog default.
func InitLoggerWithLevel(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Logger = slog.New(handler).With("service", "ems")
	slog.SetDefault(Logger)
}

func GetLogger() *slog.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// ParseLevel maps debug, info, warn or error to a slog level. Unknown names
// yield info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

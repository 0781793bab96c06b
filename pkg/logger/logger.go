package logger

import (
	"log/slog"
	"os"
)

var Log = slog.Default()

func Init() {
	// JSON handler for production-ready logging
	level := slog.LevelInfo
	if os.Getenv("APP_ENV") != "production" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}

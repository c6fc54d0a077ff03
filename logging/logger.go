package logging

import (
	"log/slog"
	"os"
)

// CreateLogger builds the process-wide logger. Development gets a
// human-readable text handler at debug level, everything else logs
// JSON at info level.
func CreateLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return slog.New(handler)
}

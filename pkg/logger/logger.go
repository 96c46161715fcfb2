package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger.
// Everything under internal/ logs through slog; no package constructs its own handler.
func New(appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

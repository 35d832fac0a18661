// Package logger holds the process-wide structured logger for the
// recruiting API.
package logger

import (
	"log/slog"
	"os"
)

// Log is set once by Init at startup and read everywhere else.
var Log *slog.Logger

// Init installs a JSON slog handler writing to stdout.
func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}

package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide JSON logger. The minimum level comes
// from LOG_LEVEL (debug|info|warn|error); main later swaps the default
// for a Fanout that adds the DB error sink once the database is up.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})))
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
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

package enumgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with enumgo-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogDefine logs a value registration.
func (l *Logger) LogDefine(id int, name string) {
	if name == "" {
		l.Debug("value defined", "id", id)
		return
	}
	l.Debug("value defined", "id", id, "name", name)
}

// LogSnapshot logs a values snapshot rebuild.
func (l *Logger) LogSnapshot(count int) {
	l.Debug("values snapshot rebuilt", "count", count)
}

// LogNamePopulation logs a name table population pass.
func (l *Logger) LogNamePopulation(count int) {
	l.Debug("name table populated", "count", count)
}

package fuzzgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fuzzgo-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output. A finder owns
// the terminal, so this is the default.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithWorkers adds a worker-count field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// WithQueryTick adds a query-version field to the logger.
func (l *Logger) WithQueryTick(tick uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("query_tick", tick),
	}
}

// LogStart logs engine startup.
func (l *Logger) LogStart(workers int) {
	l.Info("finder started",
		"workers", workers,
	)
}

// LogStop logs engine shutdown.
func (l *Logger) LogStop(items uint64) {
	l.Info("finder stopped",
		"items", items,
	)
}

// LogScanFeed logs a scan-feed operation.
func (l *Logger) LogScanFeed(bytes int, lines uint32, err error) {
	if err != nil {
		l.Error("scan feed failed",
			"bytes", bytes,
			"lines", lines,
			"error", err,
		)
	} else {
		l.Debug("scan feed",
			"bytes", bytes,
			"lines", lines,
		)
	}
}

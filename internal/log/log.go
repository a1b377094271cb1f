// Package log provides the leveled logging interface used across nbcover.
// The log messages are intended for the person running the test session,
// similar in spirit to the standard library's log package.
package log

import (
	"io"
	"log/slog"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

// Logger logs messages to a writer.
type Logger struct{ *slog.Logger }

// New builds a logger that writes to the given writer.
// The logger defaults to level Info.
func New(w io.Writer) *Logger {
	return &Logger{slog.New(&handler{W: w, Level: Info})}
}

// WithLevel builds a new logger that logs messages at or above the given
// level. The original logger is unchanged.
func (l *Logger) WithLevel(lvl Level) *Logger {
	h, ok := l.Handler().(*handler)
	if !ok {
		return l
	}
	out := *h
	out.Level = lvl
	return &Logger{slog.New(&out)}
}

// WithName builds a new logger with the provided name. The returned logger
// is safe to use concurrently with this logger.
func (l *Logger) WithName(name string) *Logger {
	out := *l
	out.Logger = l.WithGroup(name)
	return &out
}

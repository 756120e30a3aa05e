// Package silog provides the leveled key-value logger
// used throughout this module,
// built on the silog slog handler.
package silog

import (
	"fmt"
	"io"
	"log/slog"

	"go.abhg.dev/log/silog"
)

// Log levels accepted by [Options].
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Options configures a [Logger].
type Options struct {
	// Level is the minimum level that will be logged.
	Level slog.Level
}

// Logger logs leveled messages with key-value attributes.
type Logger struct {
	sl *slog.Logger
}

// New builds a Logger writing human-readable output to w.
// A nil opts logs at [LevelInfo].
func New(w io.Writer, opts *Options) *Logger {
	if opts == nil {
		opts = &Options{Level: LevelInfo}
	}
	handler := silog.NewHandler(w, &silog.HandlerOptions{
		Level: opts.Level,
	})
	return &Logger{sl: slog.New(handler)}
}

// Nop returns a Logger that discards all messages.
func Nop() *Logger {
	return &Logger{sl: slog.New(slog.DiscardHandler)}
}

// Debug logs a message at debug level
// with alternating keys and values.
func (l *Logger) Debug(msg string, kvs ...any) { l.sl.Debug(msg, kvs...) }

// Info logs a message at info level
// with alternating keys and values.
func (l *Logger) Info(msg string, kvs ...any) { l.sl.Info(msg, kvs...) }

// Warn logs a message at warn level
// with alternating keys and values.
func (l *Logger) Warn(msg string, kvs ...any) { l.sl.Warn(msg, kvs...) }

// Error logs a message at error level
// with alternating keys and values.
func (l *Logger) Error(msg string, kvs ...any) { l.sl.Error(msg, kvs...) }

// Debugf logs a printf-style message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.sl.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a printf-style message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.sl.Info(fmt.Sprintf(format, args...))
}

// Errorf logs a printf-style message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.sl.Error(fmt.Sprintf(format, args...))
}

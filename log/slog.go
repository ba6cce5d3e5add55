package log

import (
	"context"
	"io"
	"log/slog"
)

// Logger wraps log/slog so the engine and cmd/wireform share one
// structured logging shape without pulling in a third-party logging
// library the teacher never reaches for either.
type Logger struct {
	slog  *slog.Logger
	level Level
}

func NewText(w io.Writer) *Logger {
	return &Logger{
		slog: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       slog.Level(LevelTrace),
			ReplaceAttr: replaceAttr,
		})),
		level: LevelInfo,
	}
}

func NewJson(w io.Writer) *Logger {
	return &Logger{
		slog: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slog.Level(LevelTrace),
			ReplaceAttr: replaceAttr,
		})),
		level: LevelInfo,
	}
}

// SetLevel sets the logging level and returns the previous level.
func (l *Logger) SetLevel(level Level) (prev Level) {
	prev = l.level
	l.level = level
	return
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(tag string, msg string, level Level, v ...any) {
	if l.level > level {
		return
	}
	if tag != "" {
		v = append([]any{"tag", tag}, v...)
	}
	l.slog.Log(context.Background(), slog.Level(level), msg, v...)
}

// Trace level message, tagged with the construct path it was logged
// from.
func (l *Logger) Trace(tag string, msg string, v ...any) { l.log(tag, msg, LevelTrace, v...) }

// Debug level message.
func (l *Logger) Debug(tag string, msg string, v ...any) { l.log(tag, msg, LevelDebug, v...) }

// Info level message.
func (l *Logger) Info(tag string, msg string, v ...any) { l.log(tag, msg, LevelInfo, v...) }

// Warn level message.
func (l *Logger) Warn(tag string, msg string, v ...any) { l.log(tag, msg, LevelWarn, v...) }

// Error level message.
func (l *Logger) Error(tag string, msg string, v ...any) { l.log(tag, msg, LevelError, v...) }

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue(Level(level).String())
	}
	return a
}

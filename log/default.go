package log

import "os"

var defaultLogger = NewText(os.Stderr)

// Default returns the package's default logger.
func Default() *Logger { return defaultLogger }

// SetDefault replaces the default logger, e.g. with NewJson for a CLI
// that wants machine-readable trace output.
func SetDefault(l *Logger) { defaultLogger = l }

func Trace(msg string, v ...any) { defaultLogger.Trace("", msg, v...) }
func Debug(msg string, v ...any) { defaultLogger.Debug("", msg, v...) }
func Info(msg string, v ...any)  { defaultLogger.Info("", msg, v...) }
func Warn(msg string, v ...any)  { defaultLogger.Warn("", msg, v...) }
func Error(msg string, v ...any) { defaultLogger.Error("", msg, v...) }

// HasTrace reports whether trace-level logging is enabled on the
// default logger.
func HasTrace() bool { return defaultLogger.level <= LevelTrace }

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// New and NewJSONHandler are re-exported so callers and tests can build
// loggers without importing log/slog directly.
var (
	New            = slog.New
	NewJSONHandler = slog.NewJSONHandler
)

// Init configures the package logger. level is one of debug, info, warn, error.
func Init(level ...string) {
	lvl := slog.LevelInfo
	if len(level) > 0 {
		lvl = parseLevel(level[0])
	}
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
}

// SetOutput redirects the package logger, mostly for tests.
func SetOutput(w io.Writer) {
	log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func L() *slog.Logger {
	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Infof(format string, v ...any) {
	log.Info(fmt.Sprintf(format, v...))
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Warnf(format string, v ...any) {
	log.Warn(fmt.Sprintf(format, v...))
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

func Errorf(format string, v ...any) {
	log.Error(fmt.Sprintf(format, v...))
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Debugf(format string, v ...any) {
	log.Debug(fmt.Sprintf(format, v...))
}

func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}

func Fatalf(format string, v ...any) {
	log.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func WithError(err error) *slog.Logger {
	return log.With("error", err)
}

func WithFields(fields map[string]interface{}) *slog.Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return log.With(args...)
}

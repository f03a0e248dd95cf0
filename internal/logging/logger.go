// Package logging is the process-wide structured logger. Output is JSON
// via zap; callers pass loosely typed Fields.
package logging

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields are structured key/value pairs attached to one entry
type Fields map[string]any

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(level)
)

func newLogger(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLevel changes the minimum level. Unknown names are an error and
// leave the level unchanged.
func SetLevel(name string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

// SetLogger replaces the underlying logger, returning a func that restores
// the previous one
func SetLogger(l *zap.Logger) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	prev := logger
	logger = l
	return func() {
		mu.Lock()
		defer mu.Unlock()
		logger = prev
	}
}

// Logger returns the underlying zap logger for libraries that want one
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered entries
func Sync() {
	_ = Logger().Sync()
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	Logger().Debug(msg, toZap(fields)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	Logger().Info(msg, toZap(fields)...)
}

// Warn logs a warning with optional fields.
func Warn(msg string, fields Fields) {
	Logger().Warn(msg, toZap(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	Logger().Error(msg, withError(err, fields)...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	Logger().Fatal(msg, withError(err, fields)...)
}

func withError(err error, fields Fields) []zap.Field {
	out := toZap(fields)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}

// toZap sorts keys so entries are stable
func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

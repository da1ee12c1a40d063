// Package logger wraps zap initialization for the application.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps a zap.Logger so callers hold a usable instance
// before and after Init.
type Logger struct {
	// Log is the underlying structured logger.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger.
// Call Init to replace it with a configured one.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the underlying logger with a production logger
// at the given level (e.g. "Info", "Debug"). Returns an error if
// the level cannot be parsed or the logger cannot be built.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}

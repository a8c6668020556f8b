// ABOUTME: File logger for the TUI so log lines never reach the screen
// ABOUTME: Writes JSON lines to debug.log in the config directory

package debuglog

import (
	"path/filepath"
	"sync"

	"github.com/readsmvp/reads-cli/internal/logger"
	"go.uber.org/zap"
)

// FileName is the log file inside the config directory
const FileName = "debug.log"

var (
	mu      sync.Mutex
	current = zap.NewNop()
	closeFn = func() {}
)

// Init opens <configDir>/debug.log at the given level and makes it the
// package logger. If configDir is empty, logging is disabled.
func Init(configDir, level string) (*zap.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if configDir == "" {
		return current, nil
	}

	l, closer, err := logger.NewFile(filepath.Join(configDir, FileName), level)
	if err != nil {
		return current, err
	}
	current, closeFn = l, closer
	return current, nil
}

// L returns the package logger, a no-op until Init succeeds
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	closeFn()
	current = zap.NewNop()
	closeFn = func() {}
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	L().Error(context, zap.Error(err))
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

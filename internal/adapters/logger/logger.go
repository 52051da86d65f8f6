// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/partforge/partforge/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  slog.Level
	output io.Writer
}

// New creates a new Logger writing human-readable output to stderr.
func New() *Logger {
	l := &Logger{level: slog.LevelInfo, output: os.Stderr}
	l.rebuild()
	return l
}

// SetDebug toggles debug-level output.
func (l *Logger) SetDebug(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if enable {
		l.level = slog.LevelDebug
	} else {
		l.level = slog.LevelInfo
	}
	l.rebuild()
}

// SetOutput updates the logger's output destination. If w is nil,
// os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// rebuild recreates the slog handler; callers must hold mu.
func (l *Logger) rebuild() {
	handler := slog.NewTextHandler(l.output, &slog.HandlerOptions{
		Level: l.level,
	})
	l.logger = slog.New(handler)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}

var _ ports.Logger = (*Logger)(nil)

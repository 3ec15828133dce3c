package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

// Level controls which messages are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type simpleLogger struct {
	logger *log.Logger
	level  Level
}

// New creates a logger writing to stdout.
func New(level Level) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level Level) Logger {
	return &simpleLogger{
		logger: log.New(w, "", log.LstdFlags|log.Lshortfile),
		level:  level,
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

// Error logs an error message with the 🔴 emoji.
func (l *simpleLogger) Error(msg string, err error) {
	if l.level > LevelError {
		return
	}
	l.logger.Output(2, fmt.Sprintf("🔴 ERROR: %s - %v", msg, err))
}

// Warn logs a warning message with the ⚠️ emoji.
func (l *simpleLogger) Warn(msg string) {
	if l.level > LevelWarn {
		return
	}
	l.logger.Output(2, fmt.Sprintf("⚠️ WARN: %s", msg))
}

// Info logs an informational message.
func (l *simpleLogger) Info(msg string) {
	if l.level > LevelInfo {
		return
	}
	l.logger.Output(2, fmt.Sprintf("INFO: %s", msg))
}

// Debug logs a debug message.
func (l *simpleLogger) Debug(msg string) {
	if l.level > LevelDebug {
		return
	}
	l.logger.Output(2, fmt.Sprintf("DEBUG: %s", msg))
}

// Package logging provides the levelled logger the CLI hands to smartstore.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel converts a level name to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// Logger writes "LEVEL | name | message" lines and drops anything above
// its level. It implements smartstore.Logger.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
}

// New creates a Logger writing to w.
func New(w io.Writer, name string, level Level) *Logger {
	return &Logger{
		name:   name,
		level:  level,
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

func (l *Logger) Debug(_ context.Context, format string, args ...any) {
	if l.level >= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *Logger) Info(_ context.Context, format string, args ...any) {
	if l.level >= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *Logger) Warn(_ context.Context, format string, args ...any) {
	if l.level >= LevelWarn {
		l.log("WARN", format, args...)
	}
}

func (l *Logger) Error(_ context.Context, format string, args ...any) {
	l.log("ERROR", format, args...)
}

func (l *Logger) log(levelStr string, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-10s | %s", levelStr, l.name, message)
}

// Package logger provides the leveled logger used across numcards.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Logger is the logging interface handed to components.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DefaultLogger implements Logger on top of zerolog.
type DefaultLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger zerolog.Logger
}

// New creates a logger writing to output. With pretty set, output is
// human readable console text instead of JSON lines.
func New(output io.Writer, level LogLevel, pretty bool) *DefaultLogger {
	if pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}
	l := &DefaultLogger{level: level}
	l.logger = zerolog.New(output).With().Timestamp().Logger().Level(level.zerolog())
	return l
}

// With returns a child logger that adds key=value to every message.
func (l *DefaultLogger) With(key, value string) *DefaultLogger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &DefaultLogger{level: l.level, logger: l.logger.With().Str(key, value).Logger()}
}

// SetLevel sets the minimum log level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.logger = l.logger.Level(level.zerolog())
}

// GetLevel returns the current log level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *DefaultLogger) event(level LogLevel) *zerolog.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return nil
	}
	switch level {
	case LogLevelDebug:
		return l.logger.Debug()
	case LogLevelInfo:
		return l.logger.Info()
	case LogLevelWarn:
		return l.logger.Warn()
	default:
		return l.logger.Error()
	}
}

func (l *DefaultLogger) Debug(format string, args ...any) { l.event(LogLevelDebug).Msgf(format, args...) }
func (l *DefaultLogger) Info(format string, args ...any)  { l.event(LogLevelInfo).Msgf(format, args...) }
func (l *DefaultLogger) Warn(format string, args ...any)  { l.event(LogLevelWarn).Msgf(format, args...) }
func (l *DefaultLogger) Error(format string, args ...any) { l.event(LogLevelError).Msgf(format, args...) }

// Nop returns a logger that discards everything.
func Nop() *DefaultLogger {
	return New(io.Discard, LogLevelOff, false)
}

// Global logger instance
var (
	globalMu     sync.RWMutex
	globalLogger = New(os.Stderr, LogLevelInfo, true)
)

// Default returns the global logger.
func Default() *DefaultLogger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetDefault replaces the global logger.
func SetDefault(l *DefaultLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) { Default().SetLevel(level) }

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel { return Default().GetLevel() }

func Debug(format string, args ...any) { Default().Debug(format, args...) }
func Info(format string, args ...any)  { Default().Info(format, args...) }
func Warn(format string, args ...any)  { Default().Warn(format, args...) }
func Error(format string, args ...any) { Default().Error(format, args...) }

func init() {
	if levelStr := os.Getenv("NUMCARDS_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLogLevel(levelStr); err == nil {
			SetLogLevel(level)
		}
	}

	// In test mode, default to ERROR level only
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
}

package memocache

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// LogLevel defines the severity level for logging.
type LogLevel int

const (
	// LogLevelDebug enables all log messages including detailed debugging.
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables informational messages and above.
	LogLevelInfo

	// LogLevelWarn enables warning messages and above.
	LogLevelWarn

	// LogLevelError enables only error messages.
	LogLevelError

	// LogLevelNone disables all logging.
	LogLevelNone
)

// String returns the string representation of the log level.
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
	case LogLevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface for cache logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F is a convenience function to create a logging field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// DefaultLogger implements Logger using Go's standard log package.
type DefaultLogger struct {
	level  LogLevel
	logger *log.Logger
	fields []Field
}

// NewDefaultLogger creates a new logger with the specified level.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(os.Stdout, "[MEMOCACHE] ", log.LstdFlags|log.Lmicroseconds),
		fields: make([]Field, 0),
	}
}

// Debug logs a debug message.
func (dl *DefaultLogger) Debug(msg string, fields ...Field) {
	if dl.level <= LogLevelDebug {
		dl.log("DEBUG", msg, fields...)
	}
}

// Info logs an info message.
func (dl *DefaultLogger) Info(msg string, fields ...Field) {
	if dl.level <= LogLevelInfo {
		dl.log("INFO", msg, fields...)
	}
}

// Warn logs a warning message.
func (dl *DefaultLogger) Warn(msg string, fields ...Field) {
	if dl.level <= LogLevelWarn {
		dl.log("WARN", msg, fields...)
	}
}

// Error logs an error message.
func (dl *DefaultLogger) Error(msg string, fields ...Field) {
	if dl.level <= LogLevelError {
		dl.log("ERROR", msg, fields...)
	}
}

// With creates a new logger with additional fields.
func (dl *DefaultLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(dl.fields)+len(fields))
	copy(newFields, dl.fields)
	copy(newFields[len(dl.fields):], fields)

	return &DefaultLogger{
		level:  dl.level,
		logger: dl.logger,
		fields: newFields,
	}
}

func (dl *DefaultLogger) log(level, msg string, fields ...Field) {
	allFields := make([]Field, len(dl.fields)+len(fields))
	copy(allFields, dl.fields)
	copy(allFields[len(dl.fields):], fields)

	var fieldStrings []string
	for _, field := range allFields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	var logMsg string
	if len(fieldStrings) > 0 {
		logMsg = fmt.Sprintf("[%s] %s | %s", level, msg, strings.Join(fieldStrings, " "))
	} else {
		logMsg = fmt.Sprintf("[%s] %s", level, msg)
	}

	dl.logger.Println(logMsg)
}

// NoOpLogger is a logger that does nothing, for disabling logging.
type NoOpLogger struct{}

// NewNoOpLogger creates a logger that discards all messages.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (nol *NoOpLogger) Debug(string, ...Field) {}
func (nol *NoOpLogger) Info(string, ...Field)  {}
func (nol *NoOpLogger) Warn(string, ...Field)  {}
func (nol *NoOpLogger) Error(string, ...Field) {}
func (nol *NoOpLogger) With(...Field) Logger   { return nol }

// LoggingConfig defines configuration for cache event logging.
type LoggingConfig struct {
	Logger Logger

	// LogHits enables logging of fast-path hit events.
	LogHits bool

	// LogMisses enables logging of cache miss events.
	LogMisses bool

	// LogLateHits enables logging of late-hit events.
	LogLateHits bool

	// LogEvictions enables logging of capacity eviction events.
	LogEvictions bool

	// LogInvalidations enables logging of explicit eviction events.
	LogInvalidations bool

	// IncludeValues determines whether cache values appear in logs.
	IncludeValues bool

	// MaxValueLength limits the length of values included in logs.
	MaxValueLength int
}

// NewDefaultLoggingConfig creates a logging configuration with
// sensible defaults.
func NewDefaultLoggingConfig(level LogLevel) *LoggingConfig {
	return &LoggingConfig{
		Logger:           NewDefaultLogger(level),
		LogHits:          true,
		LogMisses:        true,
		LogLateHits:      true,
		LogEvictions:     true,
		LogInvalidations: true,
		IncludeValues:    false,
		MaxValueLength:   100,
	}
}

// CreateLoggingHooks creates a set of hooks that log cache events to
// the configured Logger. Attach them with Config.WithHooks or
// Hooks.Merge.
func CreateLoggingHooks[K comparable, V any](config *LoggingConfig) *Hooks[K, V] {
	if config == nil || config.Logger == nil {
		return &Hooks[K, V]{}
	}

	hooks := &Hooks[K, V]{}
	logger := config.Logger

	valueField := func(value V) []Field {
		if !config.IncludeValues {
			return nil
		}
		return []Field{F("value", truncateValue(fmt.Sprintf("%v", value), config.MaxValueLength))}
	}

	if config.LogHits {
		hooks.AddOnHit(func(key K, value V) {
			fields := append([]Field{F("key", key), F("event", "cache_hit")}, valueField(value)...)
			logger.Debug("Cache hit", fields...)
		})
	}

	if config.LogMisses {
		hooks.AddOnMiss(func(key K) {
			logger.Info("Cache miss", F("key", key), F("event", "cache_miss"))
		})
	}

	if config.LogLateHits {
		hooks.AddOnLateHit(func(key K, value V) {
			fields := append([]Field{F("key", key), F("event", "cache_late_hit")}, valueField(value)...)
			logger.Debug("Cache late hit", fields...)
		})
	}

	if config.LogEvictions {
		hooks.AddOnEvict(func(key K, value V) {
			fields := append([]Field{F("key", key), F("event", "cache_evict")}, valueField(value)...)
			logger.Info("Cache eviction", fields...)
		})
	}

	if config.LogInvalidations {
		hooks.AddOnInvalidate(func(key K) {
			logger.Info("Cache invalidation", F("key", key), F("event", "cache_invalidate"))
		})
	}

	return hooks
}

func truncateValue(value string, maxLength int) string {
	if len(value) <= maxLength {
		return value
	}
	return value[:maxLength-3] + "..."
}

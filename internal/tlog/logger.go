package tlog

import (
	"io"
	"sync"
)

// Logger is the unified logging interface. All diagnostic output in
// taprun goes through this interface rather than direct fmt.Print calls.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})

	SetLevel(level Level)
	GetLevel() Level
	SetOutput(w io.Writer)

	// Success and Fail are user-facing report lines (per-testset and
	// aggregate verdicts), always emitted regardless of level.
	Success(format string, args ...interface{})
	Fail(format string, args ...interface{})
	Header(text string)

	WithPrefix(prefix string) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
}

// Fields is a map of key-value pairs attached to a scoped logger.
type Fields map[string]interface{}

// manager holds the package-level default logger singleton.
type manager struct {
	mu     sync.RWMutex
	logger Logger
}

//nolint:gochecknoglobals // package-level singleton, mirrors mage-x's pkg/log
var defaultManager = &manager{logger: NewCLILogger()}

// SetDefault replaces the package-level default logger.
func SetDefault(l Logger) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.logger = l
}

// Default returns the package-level default logger.
func Default() Logger {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	return defaultManager.logger
}

// SetLevel sets the level on the default logger.
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// GetLevel returns the default logger's level.
func GetLevel() Level {
	return Default().GetLevel()
}

// Debug logs via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info logs via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn logs via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error logs via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Error(format string, args ...interface{}) { Default().Error(format, args...) }

// Success prints a user-facing success line via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Success(format string, args ...interface{}) { Default().Success(format, args...) }

// Fail prints a user-facing failure line via the default logger.
//
//nolint:goprintffuncname // domain-specific logging API
func Fail(format string, args ...interface{}) { Default().Fail(format, args...) }

// Header prints a section header via the default logger.
func Header(text string) { Default().Header(text) }

// WithField returns a scoped logger derived from the default logger.
func WithField(key string, value interface{}) Logger {
	return Default().WithField(key, value)
}

// WithPrefix returns a scoped logger derived from the default logger.
func WithPrefix(prefix string) Logger {
	return Default().WithPrefix(prefix)
}

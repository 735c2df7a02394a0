package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "oxy-cube"

var (
	once      sync.Once
	singleton *log.Logger
)

// Default returns the process-wide logger, creating it on first use.
// It writes to stderr with caller and RFC3339 timestamp reporting at info level.
//
// Returns:
//   - *log.Logger: the shared logger
func Default() *log.Logger {
	once.Do(func() {
		if singleton == nil {
			singleton = New(os.Stderr, log.InfoLevel)
		}
	})
	return singleton
}

// SetDefault replaces the process-wide logger.
// Intended for the entry point and for tests that capture output.
//
// Parameters:
//   - l: the logger to install, nil is ignored
func SetDefault(l *log.Logger) {
	if l == nil {
		return
	}
	once.Do(func() {})
	singleton = l
}

// New creates a logger writing to w with the given level.
//
// Parameters:
//   - w: destination for log lines
//   - level: minimum level that is emitted
//
// Returns:
//   - *log.Logger: the configured logger
func New(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	l.SetLevel(level)
	return l
}

// ParseLevel converts a level name (debug, info, warn, error, fatal) into a log.Level.
//
// Parameters:
//   - name: the level name, case-insensitive
//
// Returns:
//   - log.Level: the parsed level
//   - error: if the name is not a known level
func ParseLevel(name string) (log.Level, error) {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: invalid level %q: %w", name, err)
	}
	return level, nil
}

// SetLevel changes the level of the process-wide logger.
//
// Parameters:
//   - name: the level name
//
// Returns:
//   - error: if the name is not a known level
func SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	Default().SetLevel(level)
	return nil
}

func Debug(msg string, keyvals ...any) {
	Default().Helper()
	Default().Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	Default().Helper()
	Default().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	Default().Helper()
	Default().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	Default().Helper()
	Default().Error(msg, keyvals...)
}

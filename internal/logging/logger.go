// Package logging configures the charmbracelet/log loggers used across
// lexstyle and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide fallback logger.
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level ("debug", "info", "warn" or "error").
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at level writing to w. Unknown levels mean info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(parseLevel(level))
	return logger
}

// NewInteractive returns the logger for commands a person watches at a
// terminal, such as init and watch: timestamped and never quieter than info.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "lexstyle",
	})
	logger.SetLevel(min(Default().GetLevel(), log.InfoLevel))
	return logger
}

func parseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, creating an info logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

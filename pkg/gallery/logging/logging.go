// Package logging provides component-scoped logging for gallerist, backed
// by charmbracelet/log. Components fetch a named logger once at package
// init; levels are applied globally or per component when Init is called.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    log.Fatal(err)
//	}
//	logger := logging.Get("scanner")
//	logger.Info("discovery complete", "files", n)
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// toCharmLevel converts our Level to charmbracelet/log level.
func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Components maps component names to level overrides.
	Components map[string]string

	// Writer receives log output. Defaults to stderr.
	Writer io.Writer
}

// Logger is a component-scoped logger.
type Logger struct {
	component string
	mu        sync.Mutex
	inner     *log.Logger
}

// Debug logs a debug message with optional key/value pairs.
func (l *Logger) Debug(msg string, args ...interface{}) { l.get().Debug(msg, args...) }

// Info logs an info message with optional key/value pairs.
func (l *Logger) Info(msg string, args ...interface{}) { l.get().Info(msg, args...) }

// Warn logs a warning message with optional key/value pairs.
func (l *Logger) Warn(msg string, args ...interface{}) { l.get().Warn(msg, args...) }

// Error logs an error message with optional key/value pairs.
func (l *Logger) Error(msg string, args ...interface{}) { l.get().Error(msg, args...) }

// With returns a logger carrying additional context fields.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{component: l.component, inner: l.get().With(args...)}
}

func (l *Logger) get() *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inner == nil {
		l.inner = globalState.newCharmLogger(l.component)
	}
	return l.inner
}

func (l *Logger) reset() {
	l.mu.Lock()
	l.inner = nil
	l.mu.Unlock()
}

// state holds the global logging configuration.
type state struct {
	mu         sync.RWMutex
	writer     io.Writer
	level      Level
	components map[string]Level
	loggers    map[string]*Logger
}

var globalState = &state{
	writer:     os.Stderr,
	level:      LevelInfo,
	components: make(map[string]Level),
	loggers:    make(map[string]*Logger),
}

// Init configures levels and output for all component loggers. Loggers
// fetched before Init pick up the new configuration on their next call.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	components := make(map[string]Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %q: %w", comp, err)
		}
		components[comp] = parsed
	}

	globalState.mu.Lock()
	globalState.level = level
	globalState.components = components
	if cfg.Writer != nil {
		globalState.writer = cfg.Writer
	} else {
		globalState.writer = os.Stderr
	}
	existing := make([]*Logger, 0, len(globalState.loggers))
	for _, l := range globalState.loggers {
		existing = append(existing, l)
	}
	globalState.mu.Unlock()

	for _, l := range existing {
		l.reset()
	}
	return nil
}

// Get returns the logger for a component, creating it on first use.
func Get(component string) *Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if l, ok := globalState.loggers[component]; ok {
		return l
	}
	l := &Logger{component: component}
	globalState.loggers[component] = l
	return l
}

// newCharmLogger builds the backing charmbracelet logger for a component,
// honoring a per-component level override when configured.
func (s *state) newCharmLogger(component string) *log.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	level := s.level
	if override, ok := s.components[component]; ok {
		level = override
	}

	logger := log.NewWithOptions(s.writer, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
	})
	logger.SetLevel(level.toCharmLevel())
	return logger
}

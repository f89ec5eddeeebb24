// Package logging configures the zerolog logger used across setedit.
//
// Logs go to stderr through a console writer so they never mix with command
// output on stdout. An optional log file receives the same events as JSON.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	// Level is a zerolog level name (trace, debug, info, warn, error, disabled).
	Level string
	// Verbosity raises the level: 1 = info, 2 = debug, 3+ = trace.
	Verbosity int
	// File, when set, receives a JSON copy of every event.
	File string
	// Console is the console destination (default os.Stderr).
	Console io.Writer
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// Setup builds a logger from opts. The returned closer releases the log
// file, if one was opened, and is never nil.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	level, err := ResolveLevel(opts.Level, opts.Verbosity)
	if err != nil {
		return zerolog.Nop(), noopClose, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	closer := noopClose
	var fileErr error
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err == nil {
			writers = append(writers, f)
			closer = f.Close
		}
		fileErr = err
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", opts.File).Msg("Failed to open log file, logging to console only")
	}
	logger.Debug().Str("level", level.String()).Str("logFile", opts.File).Msg("Logger initialized")
	return logger, closer, nil
}

// ResolveLevel parses name and raises it by verbosity steps.
// An empty name means warn.
func ResolveLevel(name string, verbosity int) (zerolog.Level, error) {
	level := zerolog.WarnLevel
	if name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
		}
		level = parsed
	}

	switch {
	case verbosity >= 3:
		return zerolog.TraceLevel, nil
	case verbosity == 2 && level > zerolog.DebugLevel:
		return zerolog.DebugLevel, nil
	case verbosity == 1 && level > zerolog.InfoLevel:
		return zerolog.InfoLevel, nil
	}
	return level, nil
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func noopClose() error { return nil }

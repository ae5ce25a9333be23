// Package logging configures the zerolog logger shared by every command.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global logger writing human-readable output to stderr.
func Init(verbose bool) {
	InitWriter(os.Stderr, verbose)
}

// InitWriter initializes the global logger with a console writer on w.
func InitWriter(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    w != os.Stderr,
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// InitFile redirects the global logger to an append-only file.
// The TUI uses this so warnings don't corrupt the alt screen.
// The returned closer must be closed on shutdown.
func InitFile(path string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	InitWriter(f, verbose)
	return f, nil
}

// WithComponent creates a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

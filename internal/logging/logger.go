// Package logging configures the structured logger shared by the server and CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"core/internal/config"
)

// New creates a zerolog logger from the logging configuration.
// Format "console" gives human-readable output; anything else is JSON.
func New(cfg config.LoggingConfig, service string) zerolog.Logger {
	return NewWithWriter(cfg, service, os.Stdout)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(cfg config.LoggingConfig, service string, out io.Writer) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

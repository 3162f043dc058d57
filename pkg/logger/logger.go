package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "message-board"

// New creates a new zerolog logger with structured output.
// It reads LOG_LEVEL, LOG_FORMAT and ENV directly because it is built before configuration.
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("ENV"))
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(w io.Writer, level, format, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := ParseLevel(level)

	// Use pretty console output in development
	if env == "development" || format == "pretty" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	return zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

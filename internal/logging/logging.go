package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// setup configures the diagnostic logger. Warnings and errors from recoverable
// conditions (bad scan roots, failed repository probes) go here, never to the
// command's stdout output.
func setup() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	logger = zerolog.New(output).
		Level(parseLevel(os.Getenv("PX_LOG"))).
		With().
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

func get() *zerolog.Logger {
	initOnce.Do(setup)
	return &logger
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return get().Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return get().Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return get().Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return get().Error()
}

package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns the process logger: human-readable output on stderr,
// debug level when verbose and info otherwise.
func Setup(verbose bool) zerolog.Logger {
	return SetupWithWriter(verbose, os.Stderr)
}

// SetupWithWriter is Setup with a custom destination.
func SetupWithWriter(verbose bool, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(consoleWriter).With().Timestamp().Logger().Level(level)
}

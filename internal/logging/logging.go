// Package logging configures the structured console logger used across the
// server. It is the Go-native stand-in for the original project's colored
// terminal traces: session lifecycle events and dispatched requests are
// logged through a zerolog.Logger so callers never depend on a concrete
// output format. Parse errors, invalid requests and method-not-found
// replies are not logged.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	// Level is a zerolog level name ("trace", "debug", "info", "warn",
	// "error", "fatal", "panic"). Empty or unrecognized values mean "info".
	Level string

	// Output overrides the destination (defaults to os.Stderr).
	Output io.Writer

	// Pretty renders a colorized, human-readable console line instead of
	// raw JSON - mainly for local runs against a TTY.
	Pretty bool
}

// New builds a configured zerolog.Logger. Callers log each dispatched
// request at Debug; session start/end and listener start at Info; failed
// WebSocket upgrades at Warn. Forwarder handoffs are not logged.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05.000"}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

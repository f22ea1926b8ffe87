// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New returns a zerolog.Logger for the named service. JSON goes to stdout;
// console output goes to stderr so it never mixes with command output.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string, level zerolog.Level, format Format) zerolog.Logger {
	var out io.Writer = os.Stdout
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    true,
		}
	}
	return newWithWriter(out, serviceName, level)
}

func newWithWriter(out io.Writer, serviceName string, level zerolog.Level) zerolog.Logger {
	// Configure zerolog to work with github.com/pkg/errors:
	// - Automatically marshal pkg/errors stack traces when present
	// - Ensure a stack is present even for std errors when .Stack() is used
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	return zerolog.New(out).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// Init builds the service logger and installs it as the zerolog global, so
// packages logging through zerolog/log pick it up.
func Init(serviceName string, level zerolog.Level, format Format) zerolog.Logger {
	l := New(serviceName, level, format)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)
	log.Logger = l
	return l
}

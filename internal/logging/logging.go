// Package logging builds the command-line zerolog loggers.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// UseUTC makes every zerolog timestamp in the process UTC. It changes
// package-level zerolog state, so commands call it once at startup.
func UseUTC() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// New returns a timestamped logger writing to w at the given level, as
// console lines or, with json set, one JSON object per line. It leaves
// zerolog's global settings alone.
func New(level string, json bool, w io.Writer) zerolog.Logger {
	out := w
	if !json {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

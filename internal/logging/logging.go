// Package logging builds the zerolog loggers used by the CLI and the
// front ends.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall back
// to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger writing to w with UTC RFC3339 timestamps.
func New(w io.Writer, level string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i any) string {
			if ts, ok := i.(string); ok {
				if t, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
				return ts
			}
			return ""
		},
	}
	cw.NoColor = w != os.Stdout && w != os.Stderr
	return zerolog.New(cw).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewFile opens path for appending and returns a logger writing to it. The
// terminal view logs here so log lines do not tear the screen.
func NewFile(path, level string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	l := New(f, level)
	return l, f, nil
}

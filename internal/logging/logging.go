// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/garethgeorge/almanac/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w in the given format. Unknown levels fall
// back to info.
func New(w io.Writer, format config.LogFormat, level string) zerolog.Logger {
	if strings.EqualFold(string(format), string(config.LogFormatPretty)) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

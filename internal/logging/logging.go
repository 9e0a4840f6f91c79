// Package logging builds the zerolog logger shared by the CLI and the UI.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// New returns a console logger writing to out. verbose forces debug level.
func New(out io.Writer, level string, verbose bool) zerolog.Logger {
	lvl := ParseLevel(level)
	if verbose && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// LineWriter forwards each formatted log line to a callback, for the in-app
// log pane.
type LineWriter func(line string)

func (f LineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			f(line)
		}
	}
	return len(p), nil
}

// NewPane returns a logger that writes plain console lines to fn and to out.
func NewPane(out io.Writer, fn func(string), level string, verbose bool) zerolog.Logger {
	lvl := ParseLevel(level)
	if verbose && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	mlw := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339},
		zerolog.ConsoleWriter{Out: LineWriter(fn), TimeFormat: time.Kitchen, NoColor: true},
	)
	return zerolog.New(mlw).Level(lvl).With().Timestamp().Logger()
}

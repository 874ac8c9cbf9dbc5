// Package logger builds the zerolog logger used for diagnostics.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level. An unknown
// level falls back to warn and is reported through the returned logger.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if err != nil {
		log.Warn().Err(err).Str("level", level).Msg("log level is not recognized, defaulting to warn")
	}

	return log
}

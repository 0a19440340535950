package initialize

import (
	"io"
	"os"
	"time"

	"jewel-lending/backend/global"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: a console writer unless format is "json".
// The level is applied process-wide so it can be changed while serving.
func NewLogger(out io.Writer, level, format string) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}
	zerolog.SetGlobalLevel(ParseLevel(level))
	return zerolog.New(out).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetLevel is the config reload hook for backend.log.level.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	global.Logger.Info().Str("level", ParseLevel(level).String()).Msg("log level changed")
}

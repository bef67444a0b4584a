package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Verbose runs at debug level; otherwise
// only warnings and errors reach the console.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

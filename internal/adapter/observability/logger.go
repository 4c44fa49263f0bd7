// Package observability provides the console logger injected into the
// collection pipeline. Logging is process-wide observability state with no
// lifecycle of its own, so it lives behind the collect.Logger capability
// rather than as ambient output.
package observability

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger adapts zerolog to the collect.Logger capability.
type Logger struct {
	log zerolog.Logger
}

// NewLogger builds a console logger writing to w. Unknown level strings
// fall back to info.
func NewLogger(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
	return &Logger{log: log}
}

// Infof logs a progress message.
func (l *Logger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

// Warnf logs a degraded-but-continuing condition.
func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

// Package logging builds the zerolog logger shared by the application.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

// New returns a logger writing to w at the named level. When console is
// true, events are rendered by zerolog.ConsoleWriter instead of as JSON
// lines.
//
// Parameters:
//   - w: Destination of log events (typically os.Stderr).
//   - level: A zerolog level name such as "debug" or "warn".
//   - console: Human-readable output instead of JSON.
//   - noColor: Disable ANSI colors in console output.
//
// Returns:
//   - zerolog.Logger: The configured logger.
//   - error: An apperrors.ConfigError for an unknown level.
func New(w io.Writer, level string, console, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.Nop(), apperrors.NewConfigError("unrecognized log level: '%s'", level)
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

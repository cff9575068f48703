package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal color codes without importing the cli
// package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleEstimationError prints a status line describing why a run failed and
// returns the exit code to terminate with.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: Elapsed time before the failure, omitted when zero.
//   - out: Destination of the status line.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The exit code for the error class.
func HandleEstimationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCode(err)
	var ve ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Fprintf(out, "%sStatus: Invalid run parameters.%s %v\n", colors.Red(), colors.Reset(), err)
	case code == ExitErrorEstimation:
		fmt.Fprintf(out, "%sStatus: Failure%s. The estimation stopped%s: %v\n", colors.Red(), colors.Reset(), msgSuffix, err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred%s: %v\n", msgSuffix, err)
	}
	return code
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/ratenum/internal/rationals"
)

// ColorProvider supplies terminal color codes. It lets this package format
// messages without importing the ui package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider returns no color codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleEnumerationError prints a status line for a failed enumeration and
// returns the matching exit code.
//
// Parameters:
//   - err: The error that occurred; nil yields ExitSuccess and prints nothing.
//   - duration: The time spent before the failure; omitted when zero.
//   - out: The writer receiving the message.
//   - colors: Color codes; nil disables colors.
//
// Returns:
//   - int: The exit code for the error class.
func HandleEnumerationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
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

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, rationals.ErrRangeExhausted):
		var rangeErr *rationals.RangeError
		if errors.As(err, &rangeErr) {
			fmt.Fprintf(out, "%sStatus: Range exhausted.%s The %s kind cannot represent the value at index %d (last value %s)%s.\n",
				colors.Red(), colors.Reset(), rangeErr.Kind, rangeErr.Position, rangeErr.Last, msgSuffix)
		} else {
			fmt.Fprintf(out, "%sStatus: Range exhausted.%s %v\n", colors.Red(), colors.Reset(), err)
		}
		return ExitErrorRangeExhausted
	case errors.Is(err, rationals.ErrUnknownKind), errors.As(err, new(ConfigError)):
		fmt.Fprintf(out, "Status: Failure (Configuration). %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}

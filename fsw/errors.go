package fsw

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// ErrorKind classifies errors raised while recognizing or decoding signs.
type ErrorKind int

const (
	// EncodingError: the input stream could not be decoded into code-points. Fatal.
	EncodingError ErrorKind = iota + 1
	// GrammarMismatch: a code-point did not continue a pending sign. The pending
	// code-points are passed through as text; errors of this kind are reported
	// for tracing only and never returned.
	GrammarMismatch
	// InvariantViolation: the recognizer or the sign decoder reached a state which
	// cannot happen for well-formed tables. Fatal.
	InvariantViolation
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case EncodingError:
		return "ENCODING"
	case GrammarMismatch:
		return "MISMATCH"
	case InvariantViolation:
		return "INVARIANT"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type of package fsw.
type Error struct {
	Kind     ErrorKind
	Offset   int64    // code-point offset in the input; byte offset for EncodingError, if known
	Position Position // recognizer position at the time of the error
	Expected string   // description of the acceptable code-points
	Actual   rune     // the offending code-point, -1 for end of input
	Err      error    // underlying error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case EncodingError:
		return fmt.Sprintf("[%s] at offset %d: %v", e.Kind, e.Offset, e.Err)
	case GrammarMismatch:
		return fmt.Sprintf("[%s] at %d in %s: expected %s, have %s",
			e.Kind, e.Offset, e.Position, e.Expected, describeRune(e.Actual))
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] at %d in %s: %v", e.Kind, e.Offset, e.Position, e.Err)
	}
	return fmt.Sprintf("[%s] at %d in %s: expected %s, have %s",
		e.Kind, e.Offset, e.Position, e.Expected, describeRune(e.Actual))
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal is true for errors which stop a conversion.
func (e *Error) Fatal() bool {
	return e.Kind != GrammarMismatch
}

func describeRune(r rune) string {
	if r < 0 {
		return "end of input"
	}
	if name := runenames.Name(r); name != "" {
		return fmt.Sprintf("%U %s", r, name)
	}
	return fmt.Sprintf("%U", r)
}

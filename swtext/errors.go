package swtext

import (
	"errors"
	"fmt"
)

// ErrMalformed is the error all decoding errors match with errors.Is.
var ErrMalformed = errors.New("malformed input")

// DecodeError describes a malformed code unit sequence in the input.
type DecodeError struct {
	Encoding Encoding // encoding in effect
	Offset   int64    // byte offset of the first byte of the malformed sequence
	Bytes    []byte   // the bytes of the malformed sequence, as far as read
	Issue    string   // human readable description
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if len(e.Bytes) > 0 {
		return fmt.Sprintf("malformed %s input at offset %d [% x]: %s", e.Encoding, e.Offset, e.Bytes, e.Issue)
	}
	return fmt.Sprintf("malformed %s input at offset %d: %s", e.Encoding, e.Offset, e.Issue)
}

// Unwrap makes every DecodeError match ErrMalformed.
func (e *DecodeError) Unwrap() error {
	return ErrMalformed
}

// ByteOffset returns the position of the malformed sequence in the input.
func (e *DecodeError) ByteOffset() int64 {
	return e.Offset
}

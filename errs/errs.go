// Package errs defines the error taxonomy shared by lexcode's encode and
// decode paths.
//
// Every failure the codec can surface is one of five kinds: Eof (the input
// ran out mid-operation), InvalidEncoding (the bytes violate the framing
// rules), IntegerOverflow (a decoded magnitude doesn't fit the requested
// width), Unsupported (the traversal driver asked for something this format
// can't provide), or Message (a catch-all for conditions the driver itself
// raises). Callers should compare against the sentinel values with
// errors.Is; Messagef wraps sentinels are not needed for that last kind
// since it carries no fixed identity beyond its text.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrEOF means the decoder cursor ran out of bytes mid-operation.
	ErrEOF = errors.New("lexcode: unexpected end of input")

	// ErrInvalidEncoding means a byte pattern violates the framing rules:
	// a bad escape after a sentinel byte, an unexpected tag where 0x00/0x01
	// was required, an invalid Unicode code point, or an invalid boolean
	// byte.
	ErrInvalidEncoding = errors.New("lexcode: invalid encoding")

	// ErrIntegerOverflow means a decoded varint magnitude exceeds the
	// caller's requested fixed-width integer type.
	ErrIntegerOverflow = errors.New("lexcode: integer overflow")

	// ErrUnsupported means the traversal driver requested a codec facility
	// this format cannot provide, such as schemaless decoding into `any`
	// or encoding a map whose key type has no defined order.
	ErrUnsupported = errors.New("lexcode: unsupported operation")
)

// Messagef formats a catch-all Message-kind error, for conditions the
// traversal driver surfaces from its own validation (e.g. an unknown
// variant index rejected by the caller's target shape).
func Messagef(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

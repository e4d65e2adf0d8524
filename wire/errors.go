package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/staticproto/staticproto/bounded"
)

// Decoding and encoding errors surfaced by the codec.
var (
	// ErrInvalidVarint reports a varint running past 10 bytes, carrying
	// bits beyond the 64th, or holding a value outside the field's width.
	ErrInvalidVarint = errors.New("invalid varint")

	// ErrUnexpectedEOF reports input exhausted mid-value, or a delimited
	// length that passes the end of the decode window.
	ErrUnexpectedEOF = errors.New("unexpected EOF")

	// ErrInvalidWireType reports a tag carrying wire type 3, 4, 6 or 7, or
	// an observed wire type that mismatches the field's declared kind.
	ErrInvalidWireType = errors.New("invalid wire type")

	// ErrBufferOverflow reports an encoder write past the destination
	// buffer's capacity.
	ErrBufferOverflow = errors.New("buffer overflow")

	// ErrInvalidFieldNumber reports a tag carrying field number 0 or one
	// beyond the 29-bit range.
	ErrInvalidFieldNumber = errors.New("invalid field number")

	// ErrInvalidUTF8 reports a string payload that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in string")
)

// ErrCapacityExceeded reports a decoded value that does not fit its bounded
// container. It is the same value as bounded.ErrFull, so errors.Is matches
// under either name.
var ErrCapacityExceeded = bounded.ErrFull

// FieldError represents an encoding/decoding error with a field number path.
type FieldError struct {
	FieldPath  []FieldNumber // outermost field first, e.g. [4, 2, 1]
	IsDecoding bool          // decode side when true, encode side otherwise
	Err        error         // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	side := "encoding"
	if e.IsDecoding {
		side = "decoding"
	}

	if len(e.FieldPath) == 0 {
		return fmt.Sprintf("%s error: %v", side, e.Err)
	}

	parts := make([]string, len(e.FieldPath))
	for i, n := range e.FieldPath {
		parts[i] = strconv.Itoa(int(n))
	}

	return fmt.Sprintf("%s error at field %s: %v", side, strings.Join(parts, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapDecodingFieldError prepends fieldNumber to a decode-side error path
func wrapDecodingFieldError(err error, fieldNumber FieldNumber) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok && fe.IsDecoding {
		return &FieldError{
			FieldPath:  append([]FieldNumber{fieldNumber}, fe.FieldPath...),
			IsDecoding: true,
			Err:        fe.Err,
		}
	}

	return &FieldError{
		FieldPath:  []FieldNumber{fieldNumber},
		IsDecoding: true,
		Err:        err,
	}
}

// wrapEncodingFieldError prepends fieldNumber to an encode-side error path
func wrapEncodingFieldError(err error, fieldNumber FieldNumber) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok && !fe.IsDecoding {
		return &FieldError{
			FieldPath: append([]FieldNumber{fieldNumber}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []FieldNumber{fieldNumber},
		Err:       err,
	}
}

// Package errs defines the sentinel errors returned by logio.
//
// Call sites wrap these with additional context using fmt.Errorf("%w: ...");
// callers should match them with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a nil log, nil curve, empty key or
	// out-of-range setting is passed to an operation. Nothing is applied.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState is returned when an operation is not allowed in the
	// current writer state.
	ErrIllegalState = errors.New("illegal state")

	// ErrWriterNotOpen is returned by Append when no Write has opened the stream.
	ErrWriterNotOpen = fmt.Errorf("%w: writer is not open", ErrIllegalState)

	// ErrWriterClosed is returned by Write and Append after Close.
	ErrWriterClosed = fmt.Errorf("%w: writer is closed", ErrIllegalState)

	// ErrValueType is returned when a sample cannot be converted to the curve value type.
	ErrValueType = errors.New("value does not match curve value type")

	// ErrDimensionMismatch is returned when a sample does not carry one value per curve dimension.
	ErrDimensionMismatch = errors.New("sample dimension mismatch")

	// ErrMalformedInput is returned by the reader when the input is not a JSON well log stream.
	ErrMalformedInput = errors.New("malformed JSON well log")
)

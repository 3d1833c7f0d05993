package segwire

import "errors"

var (
	// ErrTruncated is reported when input ends before the table or any
	// declared segment completed.
	ErrTruncated = errors.New("segwire: message ends prematurely")

	// ErrTooManySegments is reported when a header declares more segments
	// than MaxSegments, before any segment allocation happens.
	ErrTooManySegments = errors.New("segwire: too many segments")

	// ErrTooLarge is reported when the declared total word count exceeds
	// the traversal limit in effect for the read.
	ErrTooLarge = errors.New("segwire: message too large")

	// ErrEmptyMessage is reported by WriteMessage and
	// ComputeSerializedSizeInWords when called with zero segments.
	ErrEmptyMessage = errors.New("segwire: message has no segments")
)

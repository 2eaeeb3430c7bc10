package buffer

import (
	"errors"

	"github.com/dshills/textcore/internal/engine/gap"
)

// Errors returned by buffer operations.
var (
	// ErrInvalidArgument indicates a missing pattern or an option that does
	// not fit the operation, such as a regexp with the wrong scan direction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange indicates an offset outside [0, Len()] or a range
	// whose begin is greater than its end. It is the same value as
	// gap.ErrIndexOutOfRange.
	ErrIndexOutOfRange = gap.ErrIndexOutOfRange

	// ErrInvalidOperation indicates an operation that needs a buffer on a
	// range that is not bound to one.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvariantViolation indicates internal state that no longer
	// satisfies its invariants. It is only raised by builds with the
	// textdebug tag.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrModifiedDuringIteration indicates the buffer was edited while a
	// line iterator was in use.
	ErrModifiedDuringIteration = errors.New("buffer modified during iteration")

	// ErrStaleHandle indicates a tracking range or subscription that has
	// already been released.
	ErrStaleHandle = errors.New("stale handle")

	// ErrEditsOverlap indicates edits overlap or are not in reverse order.
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

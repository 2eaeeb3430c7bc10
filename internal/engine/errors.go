package engine

import (
	"errors"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrIndexOutOfRange indicates an offset is outside the valid buffer range.
	ErrIndexOutOfRange = buffer.ErrIndexOutOfRange

	// ErrEditsOverlap indicates edits overlap or are not in reverse order.
	ErrEditsOverlap = buffer.ErrEditsOverlap

	// ErrMarkerExists indicates a marker name is already in use.
	ErrMarkerExists = errors.New("marker already exists")

	// ErrMarkerNotFound indicates a marker was not found.
	ErrMarkerNotFound = errors.New("marker not found")

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("engine is closed")
)

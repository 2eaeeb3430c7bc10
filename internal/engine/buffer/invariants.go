package buffer

import (
	"fmt"

	"go.uber.org/zap"
)

// checkInvariants validates the buffer in textdebug builds and panics with
// ErrInvariantViolation when the state is corrupt.
func (b *Buffer) checkInvariants(op string) {
	if !debugChecks {
		return
	}
	if err := b.validate(); err != nil {
		b.log.DPanic("buffer invariant violated", zap.String("op", op), zap.Error(err))
		panic(err)
	}
}

// validate checks the line index and the parallel arrays against the text.
func (b *Buffer) validate() error {
	n := b.text.Len()
	if b.classes.Len() != n {
		return fmt.Errorf("%w: %d classes for %d units", ErrInvariantViolation, b.classes.Len(), n)
	}
	if b.heads.Len() != b.dirty.Len() {
		return fmt.Errorf("%w: %d line heads but %d dirty states", ErrInvariantViolation, b.heads.Len(), b.dirty.Len())
	}
	if b.heads.Len() == 0 || b.heads.Get(0) != 0 {
		return fmt.Errorf("%w: first line head is not 0", ErrInvariantViolation)
	}

	line := 1
	for p := 1; p <= n; p++ {
		if !b.isLineHead(p) {
			continue
		}
		if line >= b.heads.Len() {
			return fmt.Errorf("%w: missing line head %d", ErrInvariantViolation, p)
		}
		if got := b.heads.Get(line); got != p {
			return fmt.Errorf("%w: line %d head is %d, want %d", ErrInvariantViolation, line, got, p)
		}
		line++
	}
	if line != b.heads.Len() {
		return fmt.Errorf("%w: %d line heads, want %d", ErrInvariantViolation, b.heads.Len(), line)
	}

	for i := range b.trackers {
		s := &b.trackers[i]
		if s.live && (s.begin < 0 || s.begin > s.end || s.end > n) {
			return fmt.Errorf("%w: tracker %d at [%d, %d) in length %d", ErrInvariantViolation, i, s.begin, s.end, n)
		}
	}
	return nil
}

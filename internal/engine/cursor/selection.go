package cursor

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text with a direction.
// Anchor is where the selection started; Caret is where typing occurs.
// When Anchor == Caret, this represents a caret with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor int // Where selection started
	Caret  int // Current caret position
}

// NewSelection creates a selection from anchor to caret.
func NewSelection(anchor, caret int) Selection {
	return Selection{Anchor: anchor, Caret: caret}
}

// NewCaret creates a selection representing just a caret (no extent).
func NewCaret(offset int) Selection {
	return Selection{Anchor: offset, Caret: offset}
}

// NewRangeSelection creates a forward selection covering the given range.
func NewRangeSelection(r Range) Selection {
	return Selection{Anchor: r.Begin, Caret: r.End}
}

// IsEmpty returns true if the selection has no extent (just a caret).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Caret
}

// Len returns the length of the selection in code units.
func (s Selection) Len() int {
	return s.End() - s.Begin()
}

// Range returns the selection as an unbound range (always Begin <= End).
func (s Selection) Range() Range {
	return buffer.NewRange(s.Anchor, s.Caret)
}

// Begin returns the lower bound of the selection.
func (s Selection) Begin() int {
	return min(s.Anchor, s.Caret)
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	return max(s.Anchor, s.Caret)
}

// IsForward returns true if the selection extends forward (caret >= anchor).
func (s Selection) IsForward() bool {
	return s.Caret >= s.Anchor
}

// IsBackward returns true if the selection extends backward (caret < anchor).
func (s Selection) IsBackward() bool {
	return s.Caret < s.Anchor
}

// Extend returns a new selection extended to the given offset.
// The anchor remains fixed; only the caret moves.
func (s Selection) Extend(offset int) Selection {
	return Selection{Anchor: s.Anchor, Caret: offset}
}

// MoveTo returns a new collapsed selection at the given offset.
func (s Selection) MoveTo(offset int) Selection {
	return Selection{Anchor: offset, Caret: offset}
}

// MoveBy returns a new selection shifted by delta (both anchor and caret).
func (s Selection) MoveBy(delta int) Selection {
	return Selection{Anchor: s.Anchor + delta, Caret: s.Caret + delta}
}

// Collapse collapses the selection to a caret at the caret position.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Caret, Caret: s.Caret}
}

// CollapseToBegin collapses the selection to its begin position.
func (s Selection) CollapseToBegin() Selection {
	begin := s.Begin()
	return Selection{Anchor: begin, Caret: begin}
}

// CollapseToEnd collapses the selection to its end position.
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Anchor: end, Caret: end}
}

// Flip returns a selection with anchor and caret swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Caret, Caret: s.Anchor}
}

// Normalize returns a forward selection (anchor <= caret).
func (s Selection) Normalize() Selection {
	if s.Anchor <= s.Caret {
		return s
	}
	return Selection{Anchor: s.Caret, Caret: s.Anchor}
}

// Contains returns true if the given offset is within the selection.
// For empty selections, this always returns false.
func (s Selection) Contains(offset int) bool {
	return offset >= s.Begin() && offset < s.End()
}

// Overlaps returns true if this selection overlaps with another.
func (s Selection) Overlaps(other Selection) bool {
	return s.Begin() < other.End() && other.Begin() < s.End()
}

// Merge merges two selections into one forward selection covering both.
func (s Selection) Merge(other Selection) Selection {
	return Selection{
		Anchor: min(s.Begin(), other.Begin()),
		Caret:  max(s.End(), other.End()),
	}
}

// Clamp returns a selection clamped to the valid range [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	return Selection{
		Anchor: max(0, min(s.Anchor, maxOffset)),
		Caret:  max(0, min(s.Caret, maxOffset)),
	}
}

// Constrain clamps the selection to b and moves both ends onto character
// boundaries, keeping its direction.
func (s Selection) Constrain(b *buffer.Buffer) Selection {
	begin, end := b.ConstrainIndex(s.Begin(), s.End())
	if s.IsBackward() {
		return Selection{Anchor: end, Caret: begin}
	}
	return Selection{Anchor: begin, Caret: end}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret(%d)", s.Caret)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Caret)
}

// SameRange returns true if two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Begin() == other.Begin() && s.End() == other.End()
}

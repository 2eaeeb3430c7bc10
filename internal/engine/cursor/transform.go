package cursor

import (
	"sort"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit described by d.
//
// Transformation rules:
//   - If the edit is entirely before offset: adjust offset by the delta
//   - If the edit starts after offset: offset unchanged
//   - If the edit spans offset: move offset to the end of the new text
//   - If text is inserted exactly at offset: sticky offsets stay, others
//     move to the end of the insertion
func TransformOffset(offset int, d tracking.Delta, sticky bool) int {
	return tracking.AdjustOffset(offset, d, !sticky)
}

// TransformSelection updates a selection after an edit. The selection
// tracks inward: text inserted at either end stays outside it, and a caret
// moves past text inserted at it. Direction is preserved.
func TransformSelection(sel Selection, d tracking.Delta) Selection {
	begin, end := tracking.Adjust(sel.Begin(), sel.End(), tracking.Inward, d)
	if sel.IsBackward() {
		return Selection{Anchor: end, Caret: begin}
	}
	return Selection{Anchor: begin, Caret: end}
}

// TransformSelectionWithBias transforms a selection with specified bias for
// anchor and caret.
func TransformSelectionWithBias(sel Selection, d tracking.Delta, anchorSticky, caretSticky bool) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, d, anchorSticky),
		Caret:  TransformOffset(sel.Caret, d, caretSticky),
	}
}

// TransformSelections updates selections in place after edits given in
// the order they were applied.
func TransformSelections(sels []Selection, deltas ...tracking.Delta) {
	for _, d := range deltas {
		for i := range sels {
			sels[i] = TransformSelection(sels[i], d)
		}
	}
}

// EditDelta returns the delta of an edit, measuring the new text in code
// units.
func EditDelta(edit Edit) tracking.Delta {
	return tracking.Delta{
		Index:    edit.Range.Begin,
		Removed:  edit.Range.Len(),
		Inserted: edit.Delta() + edit.Range.Len(),
	}
}

// EditsInReverseOrder returns true if edits are sorted by descending begin
// position. This is the required order for applying multiple edits
// atomically.
func EditsInReverseOrder(edits []Edit) bool {
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Begin >= edits[i-1].Range.Begin {
			return false
		}
	}
	return true
}

// SortEditsReverse sorts edits in descending order by begin position.
// This mutates the input slice.
func SortEditsReverse(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Range.Begin > edits[j].Range.Begin
	})
}

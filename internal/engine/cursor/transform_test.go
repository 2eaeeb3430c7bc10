package cursor

import (
	"testing"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/tracking"
)

func TestTransformOffset(t *testing.T) {
	insert := tracking.Delta{Index: 5, Inserted: 3}

	tests := []struct {
		name   string
		offset int
		d      tracking.Delta
		sticky bool
		want   int
	}{
		{"before insert", 2, insert, false, 2},
		{"after insert", 8, insert, false, 11},
		{"at insert", 5, insert, false, 8},
		{"at insert sticky", 5, insert, true, 5},
		{"inside removal", 6, tracking.Delta{Index: 4, Removed: 4}, false, 4},
		{"after removal", 10, tracking.Delta{Index: 4, Removed: 4}, false, 6},
		{"inside replace", 6, tracking.Delta{Index: 4, Removed: 4, Inserted: 1}, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.d, tt.sticky); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTransformSelection(t *testing.T) {
	typing := tracking.Delta{Index: 5, Inserted: 1}

	if got := TransformSelection(NewCaret(5), typing); got != NewCaret(6) {
		t.Errorf("caret should move with typing, got %s", got)
	}
	if got := TransformSelection(NewSelection(5, 9), typing); got != NewSelection(6, 10) {
		t.Errorf("text typed at the begin stays outside, got %s", got)
	}
	if got := TransformSelection(NewSelection(9, 2), typing); got != NewSelection(10, 2) {
		t.Errorf("backward selection should grow, got %s", got)
	}

	sels := []Selection{NewCaret(0), NewSelection(3, 1)}
	TransformSelections(sels, tracking.Delta{Index: 0, Inserted: 2}, tracking.Delta{Index: 4, Removed: 1})
	if sels[0] != NewCaret(2) || sels[1] != NewSelection(4, 3) {
		t.Errorf("unexpected selections %v", sels)
	}

	biased := TransformSelectionWithBias(NewSelection(5, 5), typing, true, false)
	if biased != NewSelection(5, 6) {
		t.Errorf("sticky anchor should stay, got %s", biased)
	}
}

func TestEditOrdering(t *testing.T) {
	edits := []Edit{
		buffer.NewInsert(2, "a"),
		buffer.NewDelete(8, 9),
		buffer.NewEdit(buffer.NewRange(4, 6), "\U0001F600"),
	}
	if EditsInReverseOrder(edits) {
		t.Error("edits are not in reverse order")
	}
	SortEditsReverse(edits)
	if !EditsInReverseOrder(edits) {
		t.Errorf("expected reverse order, got %v", edits)
	}

	d := EditDelta(edits[1])
	if d.Index != 4 || d.Removed != 2 || d.Inserted != 2 {
		t.Errorf("unexpected delta %s", d)
	}
}

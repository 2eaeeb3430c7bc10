package tracking

import "fmt"

// ChangeType categorizes an edit.
type ChangeType uint8

const (
	// ChangeInsert indicates text was inserted and nothing removed.
	ChangeInsert ChangeType = iota

	// ChangeDelete indicates text was removed and nothing inserted.
	ChangeDelete

	// ChangeReplace indicates text was both removed and inserted.
	ChangeReplace

	// ChangeNone indicates an edit that neither removed nor inserted text.
	ChangeNone
)

// String returns a human-readable representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	case ChangeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Delta is the position payload of an edit.
type Delta struct {
	Index    int // where the edit happened
	Removed  int // code units removed starting at Index
	Inserted int // code units inserted at Index
}

// Shift returns the change in text length.
func (d Delta) Shift() int {
	return d.Inserted - d.Removed
}

// Type categorizes the delta.
func (d Delta) Type() ChangeType {
	switch {
	case d.Removed == 0 && d.Inserted == 0:
		return ChangeNone
	case d.Removed == 0:
		return ChangeInsert
	case d.Inserted == 0:
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// String returns a human-readable representation of the delta.
func (d Delta) String() string {
	return fmt.Sprintf("%s@%d(-%d,+%d)", d.Type(), d.Index, d.Removed, d.Inserted)
}

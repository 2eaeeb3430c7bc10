package buffer

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/textutil"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset int, text string) Edit {
	return Edit{
		Range:   Range{Begin: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(begin, end int) Edit {
	return Edit{
		Range:   Range{Begin: begin, End: end},
		NewText: "",
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Begin, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return textutil.UnitLen(e.NewText) - e.Range.Len()
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange Range  // The original range that was modified
	NewRange Range  // The resulting range after the edit
	OldText  string // The text that was replaced (if any)
	Delta    int    // Change in buffer length
}

// Change describes an edit that was applied to the buffer. It is delivered
// to subscribers after the buffer, its line index and its tracking ranges
// have been updated.
type Change struct {
	Index    int        // Offset where the edit happened
	Removed  int        // Code units removed
	Inserted int        // Code units inserted
	OldText  string     // Text that was removed
	NewText  string     // Text that was added
	Revision RevisionID // Revision after the edit
}

// Delta returns the change in tracking form.
func (c Change) Delta() tracking.Delta {
	return tracking.Delta{Index: c.Index, Removed: c.Removed, Inserted: c.Inserted}
}

// Type returns whether the change inserted, deleted or replaced text.
func (c Change) Type() tracking.ChangeType {
	return c.Delta().Type()
}

// SubscriptionID identifies a change subscriber.
type SubscriptionID uint64

type subscriber struct {
	id SubscriptionID
	fn func(Change)
}

// Subscribe registers fn to be called after every edit. Subscribers run
// in registration order on the goroutine that made the edit and must not
// edit the buffer themselves.
func (b *Buffer) Subscribe(fn func(Change)) SubscriptionID {
	b.nextSubID++
	b.subscribers = append(b.subscribers, subscriber{id: b.nextSubID, fn: fn})
	return b.nextSubID
}

// Unsubscribe removes a subscriber.
func (b *Buffer) Unsubscribe(id SubscriptionID) error {
	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("subscription %d: %w", id, ErrStaleHandle)
}

func (b *Buffer) notify(c Change) {
	for _, s := range b.subscribers {
		s.fn(c)
	}
}

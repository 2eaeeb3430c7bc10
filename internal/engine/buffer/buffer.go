package buffer

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/textcore/internal/engine/gap"
	"github.com/dshills/textcore/internal/engine/textutil"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// CharClass tags a code unit with a syntax class assigned by a highlighter.
// The buffer only stores the tag; ClassNormal is the zero value given to
// every inserted character.
type CharClass uint8

// ClassNormal is the class of text no highlighter has classified.
const ClassNormal CharClass = 0

// Buffer holds the content of a document as UTF-16 code units together
// with a parallel array of character classes, the Line-Head-Index and the
// dirty state of each line.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	text    *gap.Buffer[uint16]
	classes *gap.Buffer[CharClass]
	heads   *gap.Buffer[int]
	dirty   *gap.Buffer[DirtyState]

	revision RevisionID
	modified time.Time

	trackers     []trackerSlot
	freeTrackers []int

	subscribers []subscriber
	nextSubID   SubscriptionID

	capacity     int
	lineCapacity int
	growthFactor float64
	growthSlack  int
	log          *zap.Logger
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		revision:     NewRevisionID(),
		capacity:     DefaultCapacity,
		lineCapacity: DefaultLineCapacity,
		growthFactor: DefaultGrowthFactor,
		growthSlack:  DefaultGrowthSlack,
		log:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.text = gap.New[uint16](
		gap.WithCapacity(b.capacity),
		gap.WithGrowthFactor(b.growthFactor),
		gap.WithGrowthSlack(b.growthSlack),
	)
	b.classes = gap.New[CharClass](
		gap.WithCapacity(b.capacity),
		gap.WithGrowthFactor(b.growthFactor),
		gap.WithGrowthSlack(b.growthSlack),
	)
	b.heads = gap.NewOrdered[int](gap.WithCapacity(b.lineCapacity))
	b.dirty = gap.New[DirtyState](gap.WithCapacity(b.lineCapacity))

	// An empty document still has one line starting at offset 0.
	b.heads.Append(0)
	b.dirty.Append(Clean)

	return b
}

// NewFromString creates a buffer with initial content.
// Every line of the initial content is Clean.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.load(textutil.Encode(s))
	return b
}

// NewFromUnits creates a buffer with initial content given as UTF-16 code
// units. Unpaired surrogates are stored as they are.
func NewFromUnits(units []uint16, opts ...Option) *Buffer {
	b := New(opts...)
	b.load(units)
	return b
}

// load fills an empty buffer without marking lines dirty.
func (b *Buffer) load(units []uint16) {
	if len(units) == 0 {
		return
	}
	_ = b.text.Insert(0, units...)
	_ = b.classes.Insert(0, make([]CharClass, len(units))...)
	for p := 1; p <= len(units); p++ {
		if b.isLineHead(p) {
			b.heads.Append(p)
			b.dirty.Append(Clean)
		}
	}
	b.checkInvariants("load")
}

// Read Operations

// Len returns the number of UTF-16 code units in the buffer.
func (b *Buffer) Len() int {
	return b.text.Len()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.text.Len() == 0
}

// UnitAt returns the code unit at offset i. It panics if i is outside
// [0, Len()); use CharAt for checked access.
func (b *Buffer) UnitAt(i int) uint16 {
	return b.text.Get(i)
}

// Text returns the full buffer content as a string.
// For large buffers, prefer GetText with a range.
func (b *Buffer) Text() string {
	first, second, _ := b.text.Segments(0, b.text.Len())
	return textutil.Decode(first, second)
}

// GetText returns the text in [begin, end).
// An inverted or out-of-range pair is ErrIndexOutOfRange.
func (b *Buffer) GetText(begin, end int) (string, error) {
	first, second, err := b.text.Segments(begin, end)
	if err != nil {
		return "", fmt.Errorf("get text [%d, %d): %w", begin, end, ErrIndexOutOfRange)
	}
	return textutil.Decode(first, second), nil
}

// Units returns a copy of the code units in [begin, end).
func (b *Buffer) Units(begin, end int) ([]uint16, error) {
	units, err := b.text.Slice(begin, end)
	if err != nil {
		return nil, fmt.Errorf("units [%d, %d): %w", begin, end, ErrIndexOutOfRange)
	}
	return units, nil
}

// CopyTo copies the code units of [begin, end) into dst and returns the
// number copied.
func (b *Buffer) CopyTo(begin, end int, dst []uint16) (int, error) {
	if err := b.checkRange(begin, end); err != nil {
		return 0, err
	}
	return b.text.CopyTo(begin, end, dst)
}

// RevisionID returns the current revision ID.
// It changes on every successful edit.
func (b *Buffer) RevisionID() RevisionID {
	return b.revision
}

// LastModified returns the time of the most recent edit, or the zero
// time if the buffer was never edited.
func (b *Buffer) LastModified() time.Time {
	return b.modified
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end offset of the inserted text.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	return b.Replace(offset, offset, text)
}

// InsertUnits inserts raw code units at the given offset.
// Returns the end offset of the inserted units.
func (b *Buffer) InsertUnits(offset int, units []uint16) (int, error) {
	if err := b.checkRange(offset, offset); err != nil {
		return 0, err
	}
	b.replace(offset, offset, units)
	return offset + len(units), nil
}

// Remove removes the text in [begin, end).
func (b *Buffer) Remove(begin, end int) error {
	_, err := b.Replace(begin, end, "")
	return err
}

// Replace replaces the text in [begin, end) with text.
// Returns the end offset of the replacement text.
// Nothing is modified if the range is invalid.
func (b *Buffer) Replace(begin, end int, text string) (int, error) {
	if err := b.checkRange(begin, end); err != nil {
		return 0, err
	}
	units := textutil.Encode(text)
	b.replace(begin, end, units)
	return begin + len(units), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	if err := b.checkRange(edit.Range.Begin, edit.Range.End); err != nil {
		return EditResult{}, err
	}

	oldText, _ := b.GetText(edit.Range.Begin, edit.Range.End)
	units := textutil.Encode(edit.NewText)
	b.replace(edit.Range.Begin, edit.Range.End, units)

	newEnd := edit.Range.Begin + len(units)

	return EditResult{
		OldRange: NewRange(edit.Range.Begin, edit.Range.End),
		NewRange: NewRange(edit.Range.Begin, newEnd),
		OldText:  oldText,
		Delta:    len(units) - edit.Range.Len(),
	}, nil
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) to maintain validity.
// Either every edit is applied or none is.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	// Validate edits are in reverse order and non-overlapping
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Begin {
			return ErrEditsOverlap
		}
	}

	// Validate all ranges
	for _, edit := range edits {
		if err := b.checkRange(edit.Range.Begin, edit.Range.End); err != nil {
			return err
		}
	}

	for _, edit := range edits {
		b.replace(edit.Range.Begin, edit.Range.End, textutil.Encode(edit.NewText))
	}
	return nil
}

// SetText replaces the whole content of the buffer.
func (b *Buffer) SetText(text string) {
	b.replace(0, b.text.Len(), textutil.Encode(text))
}

// checkRange validates [begin, end) against the current content.
func (b *Buffer) checkRange(begin, end int) error {
	if begin < 0 || begin > end || end > b.text.Len() {
		return fmt.Errorf("range [%d, %d) in buffer of length %d: %w",
			begin, end, b.text.Len(), ErrIndexOutOfRange)
	}
	return nil
}

// replace performs a validated edit and every follow-up: the line index,
// tracking ranges, the revision and subscribers.
func (b *Buffer) replace(begin, end int, units []uint16) {
	var oldUnits []uint16
	if len(b.subscribers) > 0 && end > begin {
		oldUnits, _ = b.text.Slice(begin, end)
	}

	if end > begin {
		_ = b.text.RemoveRange(begin, end)
		_ = b.classes.RemoveRange(begin, end)
	}
	if len(units) > 0 {
		_ = b.text.Insert(begin, units...)
		_ = b.classes.Insert(begin, make([]CharClass, len(units))...)
	}

	b.updateLineIndex(begin, end, len(units))

	d := tracking.Delta{Index: begin, Removed: end - begin, Inserted: len(units)}
	b.adjustTrackers(d)

	b.revision = NewRevisionID()
	b.modified = time.Now()

	if ce := b.log.Check(zapcore.DebugLevel, "buffer edit"); ce != nil {
		ce.Write(
			zap.Stringer("delta", d),
			zap.Int("length", b.text.Len()),
			zap.Int("lines", b.heads.Len()),
			zap.Uint64("revision", uint64(b.revision)),
		)
	}

	b.checkInvariants("edit")

	if len(b.subscribers) > 0 {
		b.notify(Change{
			Index:    begin,
			Removed:  end - begin,
			Inserted: len(units),
			OldText:  textutil.Decode(oldUnits),
			NewText:  textutil.Decode(units),
			Revision: b.revision,
		})
	}
}

// Snapshot returns an immutable copy of the buffer content and line index.
func (b *Buffer) Snapshot() *Snapshot {
	units, _ := b.text.Slice(0, b.text.Len())
	heads := b.heads.ToSlice()
	return &Snapshot{
		units:      units,
		heads:      heads,
		revisionID: b.revision,
	}
}

package buffer

import (
	"fmt"
	"iter"

	"github.com/dshills/textcore/internal/engine/textutil"
)

// Range represents a range of code units in the buffer.
// Begin is inclusive, End is exclusive: [Begin, End).
//
// A Range may be bound to a buffer, which gives access to its text. A
// bound range is a plain value: it does not follow edits. Use a
// TrackingRange for that.
type Range struct {
	Begin int // Inclusive begin position
	End   int // Exclusive end position

	buf *Buffer

	// text caches the text of [textBegin, textEnd) at revision textRev.
	text               string
	textRev            RevisionID
	textBegin, textEnd int
}

// NewRange creates a new unbound Range. Inverted bounds are swapped.
func NewRange(begin, end int) Range {
	if begin > end {
		begin, end = end, begin
	}
	return Range{Begin: begin, End: end}
}

// Range returns a Range bound to the buffer.
func (b *Buffer) Range(begin, end int) (Range, error) {
	if err := b.checkRange(begin, end); err != nil {
		return Range{}, err
	}
	return Range{Begin: begin, End: end, buf: b}, nil
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Begin, r.End)
}

// Len returns the length of the range in code units.
func (r Range) Len() int {
	return r.End - r.Begin
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Begin == r.End
}

// IsValid returns true if the range is valid (Begin <= End).
func (r Range) IsValid() bool {
	return 0 <= r.Begin && r.Begin <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Begin && offset < r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Begin >= r.Begin && other.End <= r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Begin < other.End && other.Begin < r.End
}

// Intersect returns the intersection of two ranges. Ranges that only touch
// intersect in an empty range at the contact point; disjoint ranges give
// [0:0). The result keeps r's buffer.
func (r Range) Intersect(other Range) Range {
	begin := max(r.Begin, other.Begin)
	end := min(r.End, other.End)
	if begin > end {
		return Range{buf: r.buf}
	}
	return Range{Begin: begin, End: end, buf: r.buf}
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	return Range{
		Begin: min(r.Begin, other.Begin),
		End:   max(r.End, other.End),
		buf:   r.buf,
	}
}

// Shift returns a new range shifted by the given delta.
func (r Range) Shift(delta int) Range {
	return Range{Begin: r.Begin + delta, End: r.End + delta, buf: r.buf}
}

// Buffer returns the buffer the range is bound to, or nil.
func (r Range) Buffer() *Buffer {
	return r.buf
}

// Bind returns a copy of the range bound to b.
func (r Range) Bind(b *Buffer) Range {
	return Range{Begin: r.Begin, End: r.End, buf: b}
}

// Text returns the text of the range. The text is cached until the buffer
// changes or the bounds are moved. An unbound range is ErrInvalidOperation.
func (r *Range) Text() (string, error) {
	if r.buf == nil {
		return "", fmt.Errorf("text of %s: %w", r, ErrInvalidOperation)
	}
	if r.textRev != 0 && r.textRev == r.buf.revision && r.textBegin == r.Begin && r.textEnd == r.End {
		return r.text, nil
	}
	text, err := r.buf.GetText(r.Begin, r.End)
	if err != nil {
		return "", err
	}
	r.text, r.textRev = text, r.buf.revision
	r.textBegin, r.textEnd = r.Begin, r.End
	return text, nil
}

// CharAt returns the character at offset i relative to Begin.
func (r Range) CharAt(i int) (CharData, error) {
	if r.buf == nil {
		return CharData{}, fmt.Errorf("char %d of %s: %w", i, r, ErrInvalidOperation)
	}
	if i < 0 || i >= r.Len() {
		return CharData{}, fmt.Errorf("char %d of %s: %w", i, r, ErrIndexOutOfRange)
	}
	return r.buf.CharAt(r.Begin + i)
}

// Chars returns an iterator over the grapheme clusters that start inside
// the range. An unbound range yields nothing.
func (r Range) Chars() iter.Seq[CharData] {
	return func(yield func(CharData) bool) {
		if r.buf == nil {
			return
		}
		end := min(r.End, r.buf.Len())
		for i := r.Begin; i < end; {
			if !yield(CharData{buf: r.buf, index: i}) {
				return
			}
			i = textutil.NextBoundary(r.buf, i)
		}
	}
}

// PointRange represents a range using line/column positions.
type PointRange struct {
	Begin Point // Inclusive begin position
	End   Point // Exclusive end position
}

// NewPointRange creates a new PointRange from begin and end points.
func NewPointRange(begin, end Point) PointRange {
	return PointRange{Begin: begin, End: end}
}

// String returns a human-readable representation of the range.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Begin, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r PointRange) IsEmpty() bool {
	return r.Begin == r.End
}

// IsSingleLine returns true if the range is within a single line.
func (r PointRange) IsSingleLine() bool {
	return r.Begin.Line == r.End.Line
}

// PointRange converts a range of offsets to line/column positions.
func (b *Buffer) PointRange(r Range) (PointRange, error) {
	begin, err := b.OffsetToPoint(r.Begin)
	if err != nil {
		return PointRange{}, err
	}
	end, err := b.OffsetToPoint(r.End)
	if err != nil {
		return PointRange{}, err
	}
	return NewPointRange(begin, end), nil
}

// LineRange is the range of one line, with or without its EOL code.
// Line, DirtyState and EOL describe the line when the range was taken.
type LineRange struct {
	Range
	Line       int
	DirtyState DirtyState
	EOL        EOL
}

// String returns a human-readable representation of the line range.
func (l LineRange) String() string {
	return fmt.Sprintf("line %d %s %s", l.Line, l.Range, l.DirtyState)
}

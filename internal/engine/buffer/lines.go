package buffer

import (
	"fmt"
	"iter"
)

// LineList is a read-only list view of the lines of a buffer. The view is
// live: Len and At always reflect the current content.
type LineList struct {
	buf        *Buffer
	includeEOL bool
}

// Lines returns the lines of the buffer without their EOL codes.
func (b *Buffer) Lines() LineList {
	return LineList{buf: b}
}

// RawLines returns the lines of the buffer including their EOL codes.
// Concatenating the text of every raw line gives the whole buffer.
func (b *Buffer) RawLines() LineList {
	return LineList{buf: b, includeEOL: true}
}

// IncludesEOL reports whether line ranges include their EOL code.
func (l LineList) IncludesEOL() bool {
	return l.includeEOL
}

// Len returns the number of lines.
func (l LineList) Len() int {
	return l.buf.LineCount()
}

// At returns the range of line i.
func (l LineList) At(i int) (LineRange, error) {
	return l.buf.GetLineRange(i, l.includeEOL)
}

// AtOffset returns the line containing offset. offset may equal the
// buffer length.
func (l LineList) AtOffset(offset int) (LineRange, error) {
	i, err := l.buf.LineIndexOf(offset)
	if err != nil {
		return LineRange{}, err
	}
	return l.buf.lineRange(i, l.includeEOL), nil
}

// Iter returns an iterator over the lines. The buffer must not be edited
// while the iterator is in use.
func (l LineList) Iter() *LineIterator {
	return &LineIterator{list: l, rev: l.buf.revision}
}

// All returns the lines as a range-over-func sequence. Iteration stops
// early if the buffer is edited; use Iter to observe that as an error.
func (l LineList) All() iter.Seq2[int, LineRange] {
	return func(yield func(int, LineRange) bool) {
		it := l.Iter()
		for it.Next() {
			if !yield(it.Index(), it.Line()) {
				return
			}
		}
	}
}

// LineIterator walks the lines of a LineList.
type LineIterator struct {
	list LineList
	rev  RevisionID
	next int
	cur  LineRange
	err  error
}

// Next advances to the next line. It returns false at the end or when the
// buffer was edited since the iterator was created.
func (it *LineIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.list.buf.revision != it.rev {
		it.err = fmt.Errorf("line %d: %w", it.next, ErrModifiedDuringIteration)
		return false
	}
	if it.next >= it.list.Len() {
		return false
	}
	it.cur = it.list.buf.lineRange(it.next, it.list.includeEOL)
	it.next++
	return true
}

// Line returns the current line.
func (it *LineIterator) Line() LineRange {
	return it.cur
}

// Index returns the index of the current line.
func (it *LineIterator) Index() int {
	return it.next - 1
}

// Err returns the error that stopped the iteration, if any.
func (it *LineIterator) Err() error {
	return it.err
}

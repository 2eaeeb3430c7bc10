package buffer

import (
	"fmt"
	"strings"
)

// DirtyState records whether a line was modified since it was loaded or
// last saved.
type DirtyState uint8

const (
	Clean   DirtyState = iota // unmodified since load
	Dirty                     // modified and not yet saved
	Cleaned                   // modified, then saved
)

// String returns the one-letter code of the state: C, D or S.
func (s DirtyState) String() string {
	switch s {
	case Clean:
		return "C"
	case Dirty:
		return "D"
	case Cleaned:
		return "S"
	default:
		return "?"
	}
}

const (
	cr = '\r'
	lf = '\n'
)

// isLineHead reports whether a line starts at p in the current text.
// A line starts at 0 and right after each EOL code, where a CR directly
// followed by LF counts as one code.
func (b *Buffer) isLineHead(p int) bool {
	if p == 0 {
		return true
	}
	switch b.text.Get(p - 1) {
	case lf:
		return true
	case cr:
		return p == b.text.Len() || b.text.Get(p) != lf
	}
	return false
}

// searchHead returns the index of the first line head >= p.
func (b *Buffer) searchHead(p int) int {
	i, _, _ := b.heads.BinarySearch(p)
	return i
}

// lineIndexOf returns the index of the line containing offset p.
func (b *Buffer) lineIndexOf(p int) int {
	i, found, _ := b.heads.BinarySearch(p)
	if found {
		return i
	}
	return i - 1
}

// updateLineIndex patches the line heads after [begin, oldEnd) was replaced
// by inserted code units. Heads inside the replaced text or adjacent to it
// are recomputed; heads behind it are shifted.
func (b *Buffer) updateLineIndex(begin, oldEnd, inserted int) {
	from := max(begin, 1)
	newEnd := begin + inserted
	shift := inserted - (oldEnd - begin)

	lo := b.searchHead(from)
	hi := lo
	for hi < b.heads.Len() && b.heads.Get(hi) <= oldEnd {
		hi++
	}
	if hi > lo {
		_ = b.heads.RemoveRange(lo, hi)
		_ = b.dirty.RemoveRange(lo, hi)
	}

	if shift != 0 {
		for i := lo; i < b.heads.Len(); i++ {
			_ = b.heads.Set(i, b.heads.Get(i)+shift)
		}
	}

	var added []int
	for p := from; p <= newEnd; p++ {
		if b.isLineHead(p) {
			added = append(added, p)
		}
	}
	if len(added) > 0 {
		_ = b.heads.Insert(lo, added...)
		states := make([]DirtyState, len(added))
		for i := range states {
			states[i] = Dirty
		}
		_ = b.dirty.Insert(lo, states...)
	}

	_ = b.dirty.Set(b.lineIndexOf(begin), Dirty)
	// A CR before the edit may have gained or lost its LF.
	if begin > 0 && b.text.Get(begin-1) == cr {
		_ = b.dirty.Set(b.lineIndexOf(begin-1), Dirty)
	}
}

// Line Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return b.heads.Len()
}

// LineHead returns the offset of the first character of a line.
func (b *Buffer) LineHead(line int) (int, error) {
	head, err := b.heads.At(line)
	if err != nil {
		return 0, fmt.Errorf("line %d of %d: %w", line, b.heads.Len(), ErrIndexOutOfRange)
	}
	return head, nil
}

// lineBounds returns the begin of a line, the end of its content and the
// end including its EOL code. line must be valid.
func (b *Buffer) lineBounds(line int) (begin, contentEnd, end int) {
	begin = b.heads.Get(line)
	if line+1 < b.heads.Len() {
		end = b.heads.Get(line + 1)
	} else {
		end = b.text.Len()
	}
	contentEnd = end
	if contentEnd > begin && b.text.Get(contentEnd-1) == lf {
		contentEnd--
	}
	if contentEnd > begin && b.text.Get(contentEnd-1) == cr {
		contentEnd--
	}
	return begin, contentEnd, end
}

// LineIndexOf returns the index of the line containing offset.
// offset may equal Len(), which belongs to the last line.
func (b *Buffer) LineIndexOf(offset int) (int, error) {
	if offset < 0 || offset > b.text.Len() {
		return 0, fmt.Errorf("offset %d in buffer of length %d: %w", offset, b.text.Len(), ErrIndexOutOfRange)
	}
	return b.lineIndexOf(offset), nil
}

// LineColumn returns the line and column of an offset.
func (b *Buffer) LineColumn(offset int) (line, column int, err error) {
	line, err = b.LineIndexOf(offset)
	if err != nil {
		return 0, 0, err
	}
	return line, offset - b.heads.Get(line), nil
}

// OffsetToPoint converts an offset to a line and column point.
func (b *Buffer) OffsetToPoint(offset int) (Point, error) {
	line, column, err := b.LineColumn(offset)
	if err != nil {
		return Point{}, err
	}
	return Point{Line: line, Column: column}, nil
}

// Offset converts a line and column to an offset. A column past the end
// of the line content is ErrIndexOutOfRange.
func (b *Buffer) Offset(line, column int) (int, error) {
	if line < 0 || line >= b.heads.Len() {
		return 0, fmt.Errorf("line %d of %d: %w", line, b.heads.Len(), ErrIndexOutOfRange)
	}
	begin, contentEnd, _ := b.lineBounds(line)
	if column < 0 || begin+column > contentEnd {
		return 0, fmt.Errorf("column %d of line %d: %w", column, line, ErrIndexOutOfRange)
	}
	return begin + column, nil
}

// PointToOffset converts a point to an offset.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	return b.Offset(p.Line, p.Column)
}

// LineText returns the content of a line without its EOL code.
func (b *Buffer) LineText(line int) (string, error) {
	if line < 0 || line >= b.heads.Len() {
		return "", fmt.Errorf("line %d of %d: %w", line, b.heads.Len(), ErrIndexOutOfRange)
	}
	begin, contentEnd, _ := b.lineBounds(line)
	return b.GetText(begin, contentEnd)
}

// GetLineRange returns the range of a line, with or without its EOL code.
func (b *Buffer) GetLineRange(line int, includeEOL bool) (LineRange, error) {
	if line < 0 || line >= b.heads.Len() {
		return LineRange{}, fmt.Errorf("line %d of %d: %w", line, b.heads.Len(), ErrIndexOutOfRange)
	}
	return b.lineRange(line, includeEOL), nil
}

func (b *Buffer) lineRange(line int, includeEOL bool) LineRange {
	begin, contentEnd, end := b.lineBounds(line)
	var eol EOL
	switch end - contentEnd {
	case 2:
		eol = EOLCRLF
	case 1:
		if b.text.Get(contentEnd) == cr {
			eol = EOLCR
		} else {
			eol = EOLLF
		}
	}
	r := Range{Begin: begin, End: contentEnd, buf: b}
	if includeEOL {
		r.End = end
	}
	return LineRange{
		Range:      r,
		Line:       line,
		DirtyState: b.dirty.Get(line),
		EOL:        eol,
	}
}

// DirtyState returns the dirty state of a line.
func (b *Buffer) DirtyState(line int) (DirtyState, error) {
	s, err := b.dirty.At(line)
	if err != nil {
		return 0, fmt.Errorf("line %d of %d: %w", line, b.dirty.Len(), ErrIndexOutOfRange)
	}
	return s, nil
}

// SetDirtyState sets the dirty state of a line.
func (b *Buffer) SetDirtyState(line int, s DirtyState) error {
	if err := b.dirty.Set(line, s); err != nil {
		return fmt.Errorf("line %d of %d: %w", line, b.dirty.Len(), ErrIndexOutOfRange)
	}
	return nil
}

// MarkAllCleaned turns every Dirty line into Cleaned, as after a save.
func (b *Buffer) MarkAllCleaned() {
	for i := 0; i < b.dirty.Len(); i++ {
		if b.dirty.Get(i) == Dirty {
			_ = b.dirty.Set(i, Cleaned)
		}
	}
}

// DirtyStates returns the dirty state code of every line, one letter per
// line.
func (b *Buffer) DirtyStates() string {
	var sb strings.Builder
	sb.Grow(b.dirty.Len())
	for i := 0; i < b.dirty.Len(); i++ {
		sb.WriteString(b.dirty.Get(i).String())
	}
	return sb.String()
}

// EOL identifies the line break that ends a line.
type EOL uint8

const (
	EOLNone EOL = iota // last line, no line break
	EOLLF              // \n
	EOLCRLF            // \r\n
	EOLCR              // \r
)

// String returns the escaped form of the line break.
func (e EOL) String() string {
	switch e {
	case EOLLF:
		return "\\n"
	case EOLCRLF:
		return "\\r\\n"
	case EOLCR:
		return "\\r"
	default:
		return ""
	}
}

// Sequence returns the actual line ending characters.
func (e EOL) Sequence() string {
	switch e {
	case EOLLF:
		return "\n"
	case EOLCRLF:
		return "\r\n"
	case EOLCR:
		return "\r"
	default:
		return ""
	}
}

// Len returns the number of code units of the line break.
func (e EOL) Len() int {
	return len(e.Sequence())
}

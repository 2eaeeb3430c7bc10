package buffer

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/textutil"
)

// CharData is the grapheme cluster at an offset of a buffer. At Len() it
// stands for the end of the text and reads as NUL.
type CharData struct {
	buf   *Buffer
	index int
}

// CharAt returns the character at offset i. i may equal Len().
func (b *Buffer) CharAt(i int) (CharData, error) {
	if i < 0 || i > b.text.Len() {
		return CharData{}, fmt.Errorf("char %d in buffer of length %d: %w", i, b.text.Len(), ErrIndexOutOfRange)
	}
	return CharData{buf: b, index: i}, nil
}

// Index returns the offset of the character.
func (c CharData) Index() int {
	return c.index
}

// IsEnd reports whether the character stands for the end of the text.
func (c CharData) IsEnd() bool {
	return c.buf == nil || c.index >= c.buf.text.Len()
}

// ToChar returns the first code unit of the character, or 0 at the end.
func (c CharData) ToChar() uint16 {
	if c.IsEnd() {
		return 0
	}
	return c.buf.text.Get(c.index)
}

// Rune returns the code point at the character's offset. An unpaired
// surrogate reads as U+FFFD; the end reads as 0.
func (c CharData) Rune() rune {
	if c.IsEnd() {
		return 0
	}
	r, _ := textutil.RuneAt(c.buf, c.index)
	return r
}

// Len returns the number of code units from the offset to the end of its
// grapheme cluster. It is 0 at the end of the text.
func (c CharData) Len() int {
	if c.IsEnd() {
		return 0
	}
	return textutil.ClusterLen(c.buf, c.index)
}

// String returns every code unit of the grapheme cluster that contains
// the offset, including units before it when the offset is inside the
// cluster.
func (c CharData) String() string {
	if c.IsEnd() {
		return ""
	}
	begin, end := textutil.ClusterBounds(c.buf, c.index)
	return textutil.DecodeRange(c.buf, begin, end)
}

// Class returns the class of the character's first code unit.
func (c CharData) Class() CharClass {
	if c.IsEnd() {
		return ClassNormal
	}
	return c.buf.classes.Get(c.index)
}

// Kind returns the word-boundary kind of the character.
func (c CharData) Kind() textutil.Kind {
	return textutil.KindOf(c.String())
}

// IsEOL reports whether the character is a CR or LF.
func (c CharData) IsEOL() bool {
	return !c.IsEnd() && textutil.IsEOLChar(c.ToChar())
}

// CharClass returns the class of the code unit at i.
func (b *Buffer) CharClass(i int) (CharClass, error) {
	cc, err := b.classes.At(i)
	if err != nil {
		return ClassNormal, fmt.Errorf("class %d in buffer of length %d: %w", i, b.classes.Len(), ErrIndexOutOfRange)
	}
	return cc, nil
}

// SetCharClass sets the class of the code unit at i.
func (b *Buffer) SetCharClass(i int, cc CharClass) error {
	if err := b.classes.Set(i, cc); err != nil {
		return fmt.Errorf("class %d in buffer of length %d: %w", i, b.classes.Len(), ErrIndexOutOfRange)
	}
	return nil
}

// SetCharClasses sets the class of every code unit in [begin, end).
// Classes are not content: the revision does not change.
func (b *Buffer) SetCharClasses(begin, end int, cc CharClass) error {
	if err := b.checkRange(begin, end); err != nil {
		return err
	}
	for i := begin; i < end; i++ {
		_ = b.classes.Set(i, cc)
	}
	return nil
}

// CharClasses returns a copy of the classes of [begin, end).
func (b *Buffer) CharClasses(begin, end int) ([]CharClass, error) {
	if err := b.checkRange(begin, end); err != nil {
		return nil, err
	}
	return b.classes.Slice(begin, end)
}

// IsCharBoundary reports whether a caret may be placed at i.
func (b *Buffer) IsCharBoundary(i int) bool {
	return textutil.IsClusterBoundary(b, i)
}

// NextCharIndex returns the offset of the next character after i.
func (b *Buffer) NextCharIndex(i int) int {
	return textutil.NextBoundary(b, i)
}

// PrevCharIndex returns the offset of the character before i.
func (b *Buffer) PrevCharIndex(i int) int {
	return textutil.PrevBoundary(b, i)
}

// ConstrainIndex moves both ends of [begin, end) off the middle of
// surrogate pairs, CR LF pairs and combining sequences. Inverted bounds
// are swapped and out-of-range bounds clamped.
func (b *Buffer) ConstrainIndex(begin, end int) (int, int) {
	return textutil.ConstrainIndex(b, begin, end)
}

// ConstrainRange is ConstrainIndex applied to a range. The result is bound
// to b.
func (b *Buffer) ConstrainRange(r Range) Range {
	begin, end := b.ConstrainIndex(r.Begin, r.End)
	return Range{Begin: begin, End: end, buf: b}
}

// WordRangeAt returns the run of characters around i that share the word
// kind of the character at i. At the end of the text it is the word
// ending there, if any.
func (b *Buffer) WordRangeAt(i int) (Range, error) {
	if i < 0 || i > b.text.Len() {
		return Range{}, fmt.Errorf("word at %d in buffer of length %d: %w", i, b.text.Len(), ErrIndexOutOfRange)
	}
	n := b.text.Len()
	if n == 0 {
		return Range{buf: b}, nil
	}
	i = textutil.SnapBackward(b, min(i, n))
	if i == n {
		i = textutil.PrevBoundary(b, n)
	}

	kind := CharData{buf: b, index: i}.Kind()
	if kind == textutil.KindEOL {
		return Range{Begin: i, End: textutil.NextBoundary(b, i), buf: b}, nil
	}

	begin := i
	for begin > 0 {
		prev := textutil.PrevBoundary(b, begin)
		if (CharData{buf: b, index: prev}).Kind() != kind {
			break
		}
		begin = prev
	}
	end := textutil.NextBoundary(b, i)
	for end < n {
		if (CharData{buf: b, index: end}).Kind() != kind {
			break
		}
		end = textutil.NextBoundary(b, end)
	}
	return Range{Begin: begin, End: end, buf: b}, nil
}

package search

import (
	"io"
	"unicode"
	"unicode/utf16"
)

// Segments is a logical run of UTF-16 text stored as two consecutive
// slices. Base is the logical offset of the first unit.
type Segments struct {
	First  []uint16
	Second []uint16
	Base   int
}

// Len returns the number of code units in both segments.
func (s Segments) Len() int {
	return len(s.First) + len(s.Second)
}

func (s Segments) at(i int) uint16 {
	if i < len(s.First) {
		return s.First[i]
	}
	return s.Second[i-len(s.First)]
}

// runeAt decodes the rune at local index i, never reading past end.
func (s Segments) runeAt(i, end int) (rune, int) {
	u := s.at(i)
	if 0xD800 <= u && u <= 0xDBFF && i+1 < end {
		if v := s.at(i + 1); 0xDC00 <= v && v <= 0xDFFF {
			return utf16.DecodeRune(rune(u), rune(v)), 2
		}
	}
	if utf16.IsSurrogate(rune(u)) {
		return unicode.ReplacementChar, 1
	}
	return rune(u), 1
}

// unitReader is an io.RuneReader over [pos, end) of a Segments value.
// Rune sizes are UTF-16 widths, which is what regexp accumulates into
// match positions.
type unitReader struct {
	s   Segments
	pos int
	end int
}

func (r *unitReader) ReadRune() (rune, int, error) {
	if r.pos >= r.end {
		return 0, 0, io.EOF
	}
	c, w := r.s.runeAt(r.pos, r.end)
	r.pos += w
	return c, w, nil
}

package textutil

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// Units is a random-access sequence of UTF-16 code units.
type Units interface {
	Len() int
	UnitAt(i int) uint16
}

// Slice adapts a []uint16 to Units.
type Slice []uint16

// Len returns the number of code units.
func (s Slice) Len() int { return len(s) }

// UnitAt returns the code unit at i.
func (s Slice) UnitAt(i int) uint16 { return s[i] }

// Encode converts a Go string to UTF-16 code units.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Decode converts UTF-16 code units to a Go string. Unpaired surrogates
// become U+FFFD.
func Decode(units ...[]uint16) string {
	var sb strings.Builder
	var pending uint16
	for _, seg := range units {
		for _, u := range seg {
			if pending != 0 {
				if IsLowSurrogate(u) {
					sb.WriteRune(utf16.DecodeRune(rune(pending), rune(u)))
					pending = 0
					continue
				}
				sb.WriteRune(unicode.ReplacementChar)
				pending = 0
			}
			switch {
			case IsHighSurrogate(u):
				pending = u
			case IsLowSurrogate(u):
				sb.WriteRune(unicode.ReplacementChar)
			default:
				sb.WriteRune(rune(u))
			}
		}
	}
	if pending != 0 {
		sb.WriteRune(unicode.ReplacementChar)
	}
	return sb.String()
}

// DecodeRange decodes the units in [begin, end) of src.
func DecodeRange(src Units, begin, end int) string {
	buf := make([]uint16, end-begin)
	for i := range buf {
		buf[i] = src.UnitAt(begin + i)
	}
	return Decode(buf)
}

// RuneAt decodes the rune starting at i and returns it with its width in
// code units. An unpaired surrogate decodes to U+FFFD with width 1.
func RuneAt(src Units, i int) (rune, int) {
	u := src.UnitAt(i)
	if IsHighSurrogate(u) && i+1 < src.Len() && IsLowSurrogate(src.UnitAt(i+1)) {
		return utf16.DecodeRune(rune(u), rune(src.UnitAt(i+1))), 2
	}
	if utf16.IsSurrogate(rune(u)) {
		return unicode.ReplacementChar, 1
	}
	return rune(u), 1
}

// UnitLen returns the number of UTF-16 code units needed to encode s.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsHighSurrogate reports whether u is the first half of a surrogate pair.
func IsHighSurrogate(u uint16) bool {
	return 0xD800 <= u && u <= 0xDBFF
}

// IsLowSurrogate reports whether u is the second half of a surrogate pair.
func IsLowSurrogate(u uint16) bool {
	return 0xDC00 <= u && u <= 0xDFFF
}

// IsCombiningMark reports whether r attaches to the preceding character.
func IsCombiningMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}

// IsEOLChar reports whether u is CR or LF.
func IsEOLChar(u uint16) bool {
	return u == '\r' || u == '\n'
}

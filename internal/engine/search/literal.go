package search

import "unicode"

func fold(u uint16) uint16 {
	if 0xD800 <= u && u <= 0xDFFF {
		return u
	}
	r := unicode.ToLower(rune(u))
	if r > 0xFFFF {
		return u
	}
	return uint16(r)
}

func (s Segments) matchesAt(i int, pattern []uint16, matchCase bool) bool {
	for k, p := range pattern {
		u := s.at(i + k)
		if u == p {
			continue
		}
		if matchCase || fold(u) != fold(p) {
			return false
		}
	}
	return true
}

// Index returns the logical offset of the first occurrence of pattern in
// s, or -1. An empty pattern matches at s.Base.
func Index(s Segments, pattern []uint16, matchCase bool) int {
	last := s.Len() - len(pattern)
	for i := 0; i <= last; i++ {
		if s.matchesAt(i, pattern, matchCase) {
			return s.Base + i
		}
	}
	return -1
}

// LastIndex returns the logical offset of the last occurrence of pattern
// in s, or -1. An empty pattern matches at the end of s.
func LastIndex(s Segments, pattern []uint16, matchCase bool) int {
	for i := s.Len() - len(pattern); i >= 0; i-- {
		if s.matchesAt(i, pattern, matchCase) {
			return s.Base + i
		}
	}
	return -1
}

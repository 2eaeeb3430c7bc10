package textutil

import "github.com/rivo/uniseg"

// isFixedBoundary reports whether p is a cluster boundary whatever text
// surrounds the two units next to it.
func isFixedBoundary(src Units, p int) bool {
	if p <= 0 || p >= src.Len() {
		return true
	}
	a, b := src.UnitAt(p-1), src.UnitAt(p)
	switch {
	case a == '\r' && b == '\n':
		return false
	case isControl(a) || isControl(b):
		return true
	case a < 0x80 && b < 0x80:
		return true
	}
	return false
}

func isControl(u uint16) bool {
	return u < 0x20 || u == 0x7F
}

// ClusterBounds returns the grapheme cluster [begin, end) that contains
// the unit at i. For i == src.Len() it returns (i, i).
func ClusterBounds(src Units, i int) (begin, end int) {
	n := src.Len()
	if i >= n {
		return n, n
	}
	if i < 0 {
		i = 0
	}
	if isFixedBoundary(src, i) && isFixedBoundary(src, i+1) {
		return i, i + 1
	}

	from := i
	for !isFixedBoundary(src, from) {
		from--
	}
	to := i + 1
	for !isFixedBoundary(src, to) {
		to++
	}

	rest := DecodeRange(src, from, to)
	pos, state := from, -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := UnitLen(cluster)
		if i < pos+w {
			return pos, pos + w
		}
		pos += w
	}
	return i, i + 1
}

// IsClusterBoundary reports whether a caret may be placed at i.
func IsClusterBoundary(src Units, i int) bool {
	if i <= 0 || i >= src.Len() {
		return true
	}
	begin, _ := ClusterBounds(src, i)
	return begin == i
}

// IsUndividableIndex reports whether i falls strictly inside a character:
// between the halves of a surrogate pair, between CR and LF, or between a
// base character and its combining marks.
func IsUndividableIndex(src Units, i int) bool {
	return !IsClusterBoundary(src, i)
}

// ClusterLen returns the number of code units from i to the end of the
// cluster containing i. It is 0 at the end of src.
func ClusterLen(src Units, i int) int {
	_, end := ClusterBounds(src, i)
	return end - i
}

// PrevBoundary returns the nearest cluster boundary strictly before i, or
// 0 when i is at the start.
func PrevBoundary(src Units, i int) int {
	if i <= 0 {
		return 0
	}
	begin, _ := ClusterBounds(src, i-1)
	return begin
}

// NextBoundary returns the nearest cluster boundary strictly after i, or
// src.Len() when i is at the end.
func NextBoundary(src Units, i int) int {
	if i >= src.Len() {
		return src.Len()
	}
	_, end := ClusterBounds(src, i)
	return end
}

// SnapBackward returns i if it is a boundary, otherwise the start of the
// cluster containing it.
func SnapBackward(src Units, i int) int {
	begin, _ := ClusterBounds(src, i)
	return min(begin, i)
}

// SnapForward returns i if it is a boundary, otherwise the end of the
// cluster containing it.
func SnapForward(src Units, i int) int {
	begin, end := ClusterBounds(src, i)
	if begin >= i {
		return i
	}
	return end
}

// ConstrainIndex snaps both ends of [begin, end) to cluster boundaries.
// begin moves back to the start of its cluster and end moves forward to
// the end of its cluster, so a partly covered character is kept whole.
// When end falls inside the cluster that starts at the new begin, both
// collapse onto that start.
func ConstrainIndex(src Units, begin, end int) (int, int) {
	if begin > end {
		begin, end = end, begin
	}
	begin = SnapBackward(src, max(0, min(begin, src.Len())))
	end = max(0, min(end, src.Len()))
	if SnapBackward(src, end) == begin {
		return begin, begin
	}
	return begin, SnapForward(src, end)
}

package buffer

import (
	"sort"

	"github.com/dshills/textcore/internal/engine/textutil"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	units      []uint16
	heads      []int
	revisionID RevisionID
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return textutil.Decode(s.units)
}

// TextRange returns text in the given range. Out-of-range bounds are
// clamped.
func (s *Snapshot) TextRange(begin, end int) string {
	begin = max(0, min(begin, len(s.units)))
	end = max(begin, min(end, len(s.units)))
	return textutil.Decode(s.units[begin:end])
}

// Len returns the number of code units in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.units)
}

// UnitAt returns the code unit at offset i.
func (s *Snapshot) UnitAt(i int) uint16 {
	return s.units[i]
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.heads)
}

// LineText returns the text of a specific line (without its EOL code).
// Returns "" for a line out of range.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.heads) {
		return ""
	}
	begin, end := s.heads[line], len(s.units)
	if line+1 < len(s.heads) {
		end = s.heads[line+1]
	}
	if end > begin && s.units[end-1] == lf {
		end--
	}
	if end > begin && s.units[end-1] == cr {
		end--
	}
	return textutil.Decode(s.units[begin:end])
}

// LineHead returns the offset of the first character of a line.
func (s *Snapshot) LineHead(line int) int {
	return s.heads[line]
}

// OffsetToPoint converts an offset to line/column.
func (s *Snapshot) OffsetToPoint(offset int) Point {
	offset = max(0, min(offset, len(s.units)))
	line := sort.SearchInts(s.heads, offset+1) - 1
	return Point{Line: line, Column: offset - s.heads[line]}
}

// RevisionID returns the revision ID at snapshot time.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot has no content.
func (s *Snapshot) IsEmpty() bool {
	return len(s.units) == 0
}

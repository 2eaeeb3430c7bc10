// Package buffer provides the text storage of an editor document: a gap
// buffer of UTF-16 code units with a line index that is patched
// incrementally on every edit.
//
// The buffer package provides:
//
//   - Insert, Remove and Replace with all validation done before mutation
//   - A Line-Head-Index (the offset of each line's first character) and a
//     per-line dirty state, both kept in step with every edit
//   - Ranges bound to the buffer, with cached text
//   - Tracking ranges that relocate themselves across edits according to
//     a tracking.Mode, registered in an explicit arena and released by handle
//   - Line lists that expose lines as ranges, with or without their EOL code
//   - Grapheme-aware character access (CharData) and per-character class tags
//   - Literal and regexp search that reads the gap buffer segments in place
//
// Basic usage:
//
//	buf := buffer.New()
//	buf.Insert(0, "Hello\r\nWorld")
//	buf.LineCount()                      // 2
//	line, _ := buf.GetLineRange(1, false)
//	text, _ := line.Text()               // "World"
//
//	sel, _ := buf.Track(0, 5, tracking.Outward)
//	buf.Insert(0, ">> ")
//	sel.Begin(), sel.End()               // 0, 8
//	sel.Release()
//
// Offsets:
//
// All offsets count UTF-16 code units. A character outside the Basic
// Multilingual Plane occupies two offsets; use CharAt, ConstrainIndex and
// the textutil package to keep carets on character boundaries.
//
// Line breaks:
//
// CR, LF and CR LF each end a line. Inserting LF right after a lone CR, or
// CR right before a lone LF, merges the two into one CR LF line break;
// inserting anything between the CR and LF of a pair splits it into two.
//
// Thread Safety:
//
// A Buffer performs no locking. Callers must confine each buffer to one
// goroutine or serialize access themselves. Snapshot returns an immutable
// copy that may be read from other goroutines.
package buffer

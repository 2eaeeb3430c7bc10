// Package cursor provides caret and selection management for text editing.
//
// The cursor package handles:
//
//   - Directional selections with the anchor/caret model via Selection
//   - Live cursors whose selection follows buffer edits via Cursor
//   - Grapheme-aware caret movement
//   - Selection transformation after edits described by a tracking.Delta
//
// Selection Model:
//
// Selections use an anchor/caret model where:
//   - Anchor: The position where the selection started
//   - Caret: The current position (where typing would occur)
//
// When Anchor == Caret, the selection is just a caret with no selected
// text. The selection can extend forward (caret > anchor) or backward
// (caret < anchor), preserving the user's selection direction. Range
// always gives Begin <= End.
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello world")
//	cur, _ := cursor.NewCursor(buf, cursor.NewCaret(5))
//	defer cur.Release()
//
//	buf.Insert(5, ",")        // caret moves to 6
//	cur.MoveRight(true)       // selects " "
//	cur.SelectWord()          // selects "world"
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
// Cursor shares the buffer's rules: it is not safe for concurrent use.
package cursor

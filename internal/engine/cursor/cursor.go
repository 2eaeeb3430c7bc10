package cursor

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Cursor is a selection that lives in a buffer. Its extent is a tracking
// range, so the selection follows every edit of the buffer. The range
// tracks inward: a caret moves past text typed at it, and text inserted at
// either end of a selection stays outside it.
//
// A Cursor must be released with Release when no longer needed.
type Cursor struct {
	buf      *buffer.Buffer
	extent   *buffer.TrackingRange
	backward bool
}

// NewCursor creates a cursor in b at sel. sel is clamped to the buffer and
// snapped onto character boundaries.
func NewCursor(b *buffer.Buffer, sel Selection) (*Cursor, error) {
	if b == nil {
		return nil, fmt.Errorf("cursor without buffer: %w", buffer.ErrInvalidArgument)
	}
	sel = sel.Clamp(b.Len()).Constrain(b)

	extent, err := b.Track(sel.Begin(), sel.End(), tracking.Inward)
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b, extent: extent, backward: sel.IsBackward()}, nil
}

// Buffer returns the buffer the cursor lives in.
func (c *Cursor) Buffer() *buffer.Buffer {
	return c.buf
}

// Selection returns the current selection.
func (c *Cursor) Selection() Selection {
	begin, end := c.extent.Begin(), c.extent.End()
	if c.backward && begin != end {
		return Selection{Anchor: end, Caret: begin}
	}
	return Selection{Anchor: begin, Caret: end}
}

// Caret returns the caret offset.
func (c *Cursor) Caret() int {
	return c.Selection().Caret
}

// Anchor returns the anchor offset.
func (c *Cursor) Anchor() int {
	return c.Selection().Anchor
}

// Set moves the cursor to sel, snapped onto character boundaries.
// An offset outside the buffer is buffer.ErrIndexOutOfRange.
func (c *Cursor) Set(sel Selection) error {
	n := c.buf.Len()
	if sel.Begin() < 0 || sel.End() > n {
		return fmt.Errorf("selection %s in buffer of length %d: %w", sel, n, buffer.ErrIndexOutOfRange)
	}
	sel = sel.Constrain(c.buf)
	if err := c.extent.Set(sel.Begin(), sel.End()); err != nil {
		return err
	}
	c.backward = sel.IsBackward()
	return nil
}

// moveCaret moves the caret to offset, dragging the anchor along unless
// extend is set.
func (c *Cursor) moveCaret(offset int, extend bool) error {
	sel := c.Selection()
	if extend {
		return c.Set(sel.Extend(offset))
	}
	return c.Set(sel.MoveTo(offset))
}

// MoveLeft moves the caret one character back. Without extend, a non-empty
// selection collapses to its begin instead.
func (c *Cursor) MoveLeft(extend bool) error {
	sel := c.Selection()
	if !extend && !sel.IsEmpty() {
		return c.Set(sel.CollapseToBegin())
	}
	return c.moveCaret(c.buf.PrevCharIndex(sel.Caret), extend)
}

// MoveRight moves the caret one character forward. Without extend, a
// non-empty selection collapses to its end instead.
func (c *Cursor) MoveRight(extend bool) error {
	sel := c.Selection()
	if !extend && !sel.IsEmpty() {
		return c.Set(sel.CollapseToEnd())
	}
	return c.moveCaret(c.buf.NextCharIndex(sel.Caret), extend)
}

// MoveToLineHead moves the caret to the head of its line.
func (c *Cursor) MoveToLineHead(extend bool) error {
	line, err := c.buf.LineIndexOf(c.Caret())
	if err != nil {
		return err
	}
	head, err := c.buf.LineHead(line)
	if err != nil {
		return err
	}
	return c.moveCaret(head, extend)
}

// MoveToLineEnd moves the caret to the end of its line's content, before
// the EOL code.
func (c *Cursor) MoveToLineEnd(extend bool) error {
	lr, err := c.buf.Lines().AtOffset(c.Caret())
	if err != nil {
		return err
	}
	return c.moveCaret(lr.End, extend)
}

// MoveLines moves the caret delta lines up (negative) or down, keeping its
// column where the target line is long enough.
func (c *Cursor) MoveLines(delta int, extend bool) error {
	p, err := c.buf.OffsetToPoint(c.Caret())
	if err != nil {
		return err
	}
	line := max(0, min(p.Line+delta, c.buf.LineCount()-1))
	lr, err := c.buf.GetLineRange(line, false)
	if err != nil {
		return err
	}
	return c.moveCaret(min(lr.Begin+p.Column, lr.End), extend)
}

// SelectWord selects the word around the caret.
func (c *Cursor) SelectWord() error {
	r, err := c.buf.WordRangeAt(c.Caret())
	if err != nil {
		return err
	}
	return c.Set(NewRangeSelection(r))
}

// SelectAll selects the whole buffer.
func (c *Cursor) SelectAll() error {
	return c.Set(NewSelection(0, c.buf.Len()))
}

// Text returns the selected text.
func (c *Cursor) Text() (string, error) {
	sel := c.Selection()
	return c.buf.GetText(sel.Begin(), sel.End())
}

// Release unregisters the cursor from its buffer.
func (c *Cursor) Release() error {
	return c.extent.Release()
}

// String returns a string representation of the cursor.
func (c *Cursor) String() string {
	return c.Selection().String()
}

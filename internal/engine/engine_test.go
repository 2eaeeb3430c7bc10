package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("expected empty engine, got len %d", e.Len())
	}
	if !e.IsEmpty() || e.Text() != "" {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	if e.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", e.LineCount())
	}
}

func TestNewWithContent(t *testing.T) {
	content := "Hello, \U0001F30D!"
	e := New(WithContent(content), WithLogger(zaptest.NewLogger(t)))

	if e.Text() != content {
		t.Errorf("expected %q, got %q", content, e.Text())
	}
	// The globe is a surrogate pair.
	if e.Len() != 10 {
		t.Errorf("expected len 10, got %d", e.Len())
	}
}

func TestNewFromReader(t *testing.T) {
	content := "Hello,\r\nWorld!"
	e, err := NewFromReader(strings.NewReader(content),
		WithBufferOptions(buffer.WithCapacity(4), buffer.WithGrowthSlack(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Text() != content {
		t.Errorf("expected %q, got %q", content, e.Text())
	}
	if e.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", e.LineCount())
	}
}

func TestInsert(t *testing.T) {
	e := New()

	end, err := e.Insert(0, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != 5 {
		t.Errorf("expected end position 5, got %d", end)
	}

	if _, err := e.Insert(5, ", World!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "Hello, World!" {
		t.Errorf("expected %q, got %q", "Hello, World!", e.Text())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	e := New(WithContent("Hello"))

	if _, err := e.Insert(100, "text"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if e.Text() != "Hello" {
		t.Errorf("failed insert changed the text: %q", e.Text())
	}
}

func TestDelete(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	if err := e.Delete(5, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "HelloWorld!" {
		t.Errorf("expected %q, got %q", "HelloWorld!", e.Text())
	}
}

func TestReplace(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	end, err := e.Replace(7, 12, "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != 9 {
		t.Errorf("expected end position 9, got %d", end)
	}
	if e.Text() != "Hello, Go!" {
		t.Errorf("expected %q, got %q", "Hello, Go!", e.Text())
	}
}

func TestApplyEdit(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	result, err := e.ApplyEdit(Edit{Range: Range{Begin: 0, End: 5}, NewText: "Hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OldText != "Hello" || result.Delta != -3 {
		t.Errorf("unexpected result %+v", result)
	}
	if e.Text() != "Hi, World!" {
		t.Errorf("expected %q, got %q", "Hi, World!", e.Text())
	}
}

func TestApplyEdits(t *testing.T) {
	e := New(WithContent("foo bar baz"))

	// Edits must be in reverse order
	err := e.ApplyEdits([]Edit{
		{Range: Range{Begin: 8, End: 11}, NewText: "qux"},
		{Range: Range{Begin: 4, End: 7}, NewText: "XYZ"},
		{Range: Range{Begin: 0, End: 3}, NewText: "ABC"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "ABC XYZ qux" {
		t.Errorf("expected %q, got %q", "ABC XYZ qux", e.Text())
	}

	err = e.ApplyEdits([]Edit{
		{Range: Range{Begin: 0, End: 3}, NewText: "1"},
		{Range: Range{Begin: 4, End: 7}, NewText: "2"},
	})
	if !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("expected ErrEditsOverlap, got %v", err)
	}
	if e.Text() != "ABC XYZ qux" {
		t.Errorf("rejected batch changed the text: %q", e.Text())
	}
}

// ============================================================================
// Read Operations
// ============================================================================

func TestLineOperations(t *testing.T) {
	e := New(WithContent("line 1\r\nline 2\nline 3"))

	if e.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", e.LineCount())
	}

	text, err := e.LineText(1)
	if err != nil || text != "line 2" {
		t.Errorf("expected 'line 2', got %q (%v)", text, err)
	}

	lr, err := e.LineRange(0, true)
	if err != nil {
		t.Fatal(err)
	}
	if lr.Begin != 0 || lr.End != 8 || lr.EOL != buffer.EOLCRLF {
		t.Errorf("unexpected line range %s", lr)
	}

	if _, err := e.LineText(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestTextRange(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	text, err := e.TextRange(7, 12)
	if err != nil || text != "World" {
		t.Errorf("expected 'World', got %q (%v)", text, err)
	}
	if _, err := e.TextRange(7, 20); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestOffsetToPoint(t *testing.T) {
	e := New(WithContent("ab\ncd"))

	p, err := e.OffsetToPoint(4)
	if err != nil || p != (Point{Line: 1, Column: 1}) {
		t.Errorf("expected 1:1, got %s (%v)", p, err)
	}

	off, err := e.PointToOffset(Point{Line: 1, Column: 2})
	if err != nil || off != 5 {
		t.Errorf("expected 5, got %d (%v)", off, err)
	}
}

func TestDirtyStates(t *testing.T) {
	e := New(WithContent("a\nb"))

	if got := e.DirtyStates(); got != "CC" {
		t.Errorf("expected CC, got %s", got)
	}
	if _, err := e.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}
	if got := e.DirtyStates(); got != "DC" {
		t.Errorf("expected DC, got %s", got)
	}
	e.MarkSaved()
	if got := e.DirtyStates(); got != "SC" {
		t.Errorf("expected SC, got %s", got)
	}
}

// ============================================================================
// Selection
// ============================================================================

func TestTypingAtSelection(t *testing.T) {
	e := New(WithContent("Hello World"))

	if err := e.SetSelection(NewCaret(5)); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertText(","); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "Hello, World" || e.Selection() != NewCaret(6) {
		t.Errorf("unexpected %q with %s", e.Text(), e.Selection())
	}

	if err := e.SetSelection(NewSelection(12, 7)); err != nil {
		t.Fatal(err)
	}
	if text, _ := e.SelectedText(); text != "World" {
		t.Errorf("expected 'World', got %q", text)
	}
	if err := e.InsertText("Go"); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "Hello, Go" || e.Selection() != NewCaret(9) {
		t.Errorf("unexpected %q with %s", e.Text(), e.Selection())
	}

	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "Hello, G" || e.Selection() != NewCaret(8) {
		t.Errorf("unexpected %q with %s", e.Text(), e.Selection())
	}
}

func TestSelectionEditsBeforeCaret(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.SetSelection(NewCaret(3)); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Insert(0, "123"); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != NewCaret(6) {
		t.Errorf("expected caret at 6, got %s", e.Selection())
	}
	if err := e.Delete(0, 6); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != NewCaret(0) {
		t.Errorf("expected caret at 0, got %s", e.Selection())
	}
}

func TestDeleteCharacters(t *testing.T) {
	e := New(WithContent("a\U0001F600\u00e9"))

	if err := e.SetSelection(NewCaret(3)); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a\u00e9" || e.Selection() != NewCaret(1) {
		t.Errorf("unexpected %q with %s", e.Text(), e.Selection())
	}

	if err := e.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a" {
		t.Errorf("expected the whole cluster removed, got %q", e.Text())
	}

	// Nothing to delete at the ends.
	if err := e.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if err := e.SetSelection(NewCaret(0)); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a" {
		t.Errorf("expected 'a', got %q", e.Text())
	}
}

func TestCaretMovement(t *testing.T) {
	e := New(WithContent("one two\nthree"))

	if err := e.MoveRight(true); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != NewSelection(0, 1) {
		t.Errorf("expected 0→1, got %s", e.Selection())
	}
	if err := e.MoveLines(1, false); err != nil {
		t.Fatal(err)
	}
	if e.Selection() != NewCaret(9) {
		t.Errorf("expected caret at 9, got %s", e.Selection())
	}
	if err := e.MoveLeft(false); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectWord(); err != nil {
		t.Fatal(err)
	}
	if text, _ := e.SelectedText(); text != "three" {
		t.Errorf("expected 'three', got %q", text)
	}
}

func TestSetSelectionOutOfRange(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.SetSelection(NewSelection(1, 9)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

// ============================================================================
// Markers
// ============================================================================

func TestMarkers(t *testing.T) {
	e := New(WithContent("abc def"), WithLogger(zaptest.NewLogger(t)))

	if err := e.AddMarker("word", 4, 7, tracking.Outward); err != nil {
		t.Fatal(err)
	}
	if err := e.AddMarker("start", 0, 0, tracking.Backward); err != nil {
		t.Fatal(err)
	}
	if err := e.AddMarker("word", 0, 1, tracking.None); !errors.Is(err, ErrMarkerExists) {
		t.Errorf("expected ErrMarkerExists, got %v", err)
	}
	if err := e.AddMarker("bad", 0, 99, tracking.None); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	if _, err := e.Insert(0, ">> "); err != nil {
		t.Fatal(err)
	}

	r, err := e.Marker("word")
	if err != nil {
		t.Fatal(err)
	}
	if r.Begin != 7 || r.End != 10 {
		t.Errorf("expected [7:10), got %s", r)
	}
	if text, _ := e.MarkerText("word"); text != "def" {
		t.Errorf("expected 'def', got %q", text)
	}
	if r, _ := e.Marker("start"); r.Begin != 0 {
		t.Errorf("backward marker should stay in front, got %s", r)
	}

	names := e.Markers()
	if len(names) != 2 || names[0] != "start" || names[1] != "word" {
		t.Errorf("unexpected names %v", names)
	}

	if err := e.RemoveMarker("word"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Marker("word"); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("expected ErrMarkerNotFound, got %v", err)
	}
	if err := e.RemoveMarker("word"); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("expected ErrMarkerNotFound, got %v", err)
	}

	// The selection and one marker remain.
	if n := e.Buffer().TrackerCount(); n != 2 {
		t.Errorf("expected 2 trackers, got %d", n)
	}
}

// ============================================================================
// Search
// ============================================================================

func TestFind(t *testing.T) {
	e := New(WithContent("foo Foo foo"))

	res, err := e.Find("foo")
	if err != nil || res == nil || res.Begin != 0 {
		t.Fatalf("expected match at 0, got %v (%v)", res, err)
	}
	if e.Selection() != NewSelection(0, 3) {
		t.Errorf("match should be selected, got %s", e.Selection())
	}

	res, _ = e.Find("foo")
	if res == nil || res.Begin != 8 {
		t.Errorf("expected case-sensitive match at 8, got %v", res)
	}

	res, err = e.Find("foo")
	if err != nil || res != nil {
		t.Errorf("expected no more matches, got %v (%v)", res, err)
	}
	if e.Selection() != NewSelection(8, 11) {
		t.Errorf("a failed search keeps the selection, got %s", e.Selection())
	}

	res, _ = e.FindBackward("foo")
	if res == nil || res.Begin != 0 {
		t.Errorf("expected backward match at 0, got %v", res)
	}
}

func TestFindIgnoreCase(t *testing.T) {
	e := New(WithContent("foo Foo foo"), WithMatchCase(false))

	all, err := e.FindAll("FOO")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[1].Begin != 4 {
		t.Errorf("expected 3 matches, got %v", all)
	}
	if e.Selection() != NewCaret(0) {
		t.Errorf("FindAll should not move the selection, got %s", e.Selection())
	}
}

func TestFindRegexp(t *testing.T) {
	e := New(WithContent("a1 b22 c333"), WithRegexp(true))

	res, err := e.Find(`[a-z]\d+`)
	if err != nil || res == nil || res.Begin != 0 || res.End != 2 {
		t.Fatalf("expected [0:2), got %v (%v)", res, err)
	}

	all, err := e.FindAll(`[a-z]\d+`)
	if err != nil || len(all) != 3 {
		t.Errorf("expected 3 matches, got %v (%v)", all, err)
	}

	if err := e.SetSelection(NewCaret(e.Len())); err != nil {
		t.Fatal(err)
	}
	res, err = e.FindBackward(`[a-z]\d+`)
	if err != nil || res == nil || res.Begin != 7 || res.End != 11 {
		t.Errorf("expected [7:11), got %v (%v)", res, err)
	}

	if _, err := e.Find(`(`); !errors.Is(err, buffer.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	// An empty pattern never loops.
	all, err = e.FindAll(``)
	if err != nil || len(all) != e.Len() {
		t.Errorf("expected %d empty matches, got %d (%v)", e.Len(), len(all), err)
	}
}

// ============================================================================
// Lifecycle and Configuration
// ============================================================================

func TestReadOnly(t *testing.T) {
	e := New(WithContent("read-only content"), WithReadOnly())

	if !e.IsReadOnly() {
		t.Error("expected read-only engine")
	}
	if _, err := e.Insert(0, "text"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.Delete(0, 4); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.InsertText("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.SetContent(""); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}

	// Reads and selection still work.
	if res, _ := e.Find("only"); res == nil || res.Begin != 5 {
		t.Errorf("expected match at 5, got %v", res)
	}
	if e.Text() != "read-only content" {
		t.Errorf("unexpected %q", e.Text())
	}
}

func TestSetContent(t *testing.T) {
	e := New(WithContent("Hello"))
	if err := e.SetSelection(NewCaret(5)); err != nil {
		t.Fatal(err)
	}

	if err := e.SetContent("New\ncontent"); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "New\ncontent" || e.LineCount() != 2 {
		t.Errorf("unexpected %q", e.Text())
	}
	if e.Selection() != NewCaret(0) {
		t.Errorf("expected caret at 0, got %s", e.Selection())
	}

	if err := e.Clear(); err != nil {
		t.Fatal(err)
	}
	if !e.IsEmpty() {
		t.Errorf("expected empty engine, got %q", e.Text())
	}
}

func TestOnChange(t *testing.T) {
	e := New(WithContent("abc"))

	var changes []Change
	id := e.OnChange(func(c Change) {
		changes = append(changes, c)
	})

	if _, err := e.Replace(1, 2, "XY"); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	c := changes[0]
	if c.Index != 1 || c.Removed != 1 || c.Inserted != 2 || c.OldText != "b" || c.NewText != "XY" {
		t.Errorf("unexpected change %+v", c)
	}
	if c.Revision != e.RevisionID() {
		t.Error("change should carry the new revision")
	}

	if err := e.RemoveOnChange(id); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Insert(0, "z"); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Errorf("removed callback was called")
	}
}

func TestOnChangeReadsEngine(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.SetSelection(NewSelection(1, 3)); err != nil {
		t.Fatal(err)
	}

	var texts []string
	var sels []Selection
	e.OnChange(func(Change) {
		texts = append(texts, e.Text())
		sels = append(sels, e.Selection())
	})

	done := make(chan error, 1)
	go func() {
		_, err := e.Insert(0, "x")
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Insert blocked in a change callback")
	}

	if len(texts) != 1 || texts[0] != "xabc" {
		t.Errorf("expected callback to read 'xabc', got %q", texts)
	}
	if len(sels) != 1 || sels[0] != NewSelection(2, 4) {
		t.Errorf("expected callback to see 2→4, got %v", sels)
	}
}

func TestOnChangeEditsEngine(t *testing.T) {
	e := New(WithContent("abc"))

	var seen []string
	e.OnChange(func(c Change) {
		seen = append(seen, c.NewText)
		if c.NewText == "1" {
			_, _ = e.Insert(e.Len(), "2")
		}
	})

	if _, err := e.Insert(0, "1"); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "1abc2" {
		t.Errorf("expected '1abc2', got %q", e.Text())
	}
	if len(seen) != 2 || seen[0] != "1" || seen[1] != "2" {
		t.Errorf("unexpected changes %q", seen)
	}
}

func TestRemoveOnChangeUnknown(t *testing.T) {
	e := New()
	if err := e.RemoveOnChange(42); !errors.Is(err, buffer.ErrStaleHandle) {
		t.Errorf("expected ErrStaleHandle, got %v", err)
	}
}

func TestClose(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.AddMarker("m", 0, 1, tracking.Forward); err != nil {
		t.Fatal(err)
	}
	if err := e.SetSelection(NewSelection(3, 1)); err != nil {
		t.Fatal(err)
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if sel := e.Selection(); sel != NewSelection(3, 1) {
		t.Errorf("expected the last selection 3←1, got %s", sel)
	}
	if text, err := e.SelectedText(); err != nil || text != "bc" {
		t.Errorf("expected selected text 'bc', got %q (%v)", text, err)
	}
	if n := e.Buffer().TrackerCount(); n != 0 {
		t.Errorf("expected no trackers, got %d", n)
	}
	if _, err := e.Insert(0, "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := e.MoveRight(false); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if e.Text() != "abc" {
		t.Errorf("reads should still work, got %q", e.Text())
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

// ============================================================================
// Thread Safety
// ============================================================================

func TestConcurrentReads(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Text()
			_ = e.Len()
			_ = e.LineCount()
			_, _ = e.LineText(0)
			_, _ = e.OffsetToPoint(0)
			_ = e.Selection()
		}()
	}
	wg.Wait()
}

func TestConcurrentReadWrite(t *testing.T) {
	e := New()

	var wg sync.WaitGroup

	// Writers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _ = e.Insert(0, "x\n")
			}
		}()
	}

	// Readers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.Text()
				_ = e.Snapshot().LineCount()
			}
		}()
	}

	wg.Wait()

	if e.Len() != 200 {
		t.Errorf("expected len 200, got %d", e.Len())
	}
	if e.LineCount() != 101 {
		t.Errorf("expected 101 lines, got %d", e.LineCount())
	}
}

func TestSnapshot(t *testing.T) {
	e := New(WithContent("Hello"))
	snap := e.Snapshot()

	if _, err := e.Insert(5, ", World!"); err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "Hello" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if snap.RevisionID() == e.RevisionID() {
		t.Error("snapshot should keep the old revision")
	}
}

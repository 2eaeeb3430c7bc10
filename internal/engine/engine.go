package engine

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/search"
	"github.com/dshills/textcore/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a span of code units in the buffer.
	Range = buffer.Range

	// LineRange is a line span with its dirty state and EOL kind.
	LineRange = buffer.LineRange

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Change describes an applied edit to change subscribers.
	Change = buffer.Change

	// SearchResult is a match found by Find or FindBackward.
	SearchResult = buffer.SearchResult

	// Selection represents a caret or a directional selection.
	Selection = cursor.Selection

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Mode is the tracking policy of a marker.
	Mode = tracking.Mode
)

// NewCaret returns an empty selection at offset.
func NewCaret(offset int) Selection {
	return cursor.NewCaret(offset)
}

// NewSelection returns a selection from anchor to caret.
func NewSelection(anchor, caret int) Selection {
	return cursor.NewSelection(anchor, caret)
}

// Engine is the main facade for the text engine.
// It combines a buffer, a live selection, named markers and search
// defaults into a unified, thread-safe API.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	cur     *cursor.Cursor
	markers map[string]*buffer.TrackingRange

	// Configuration
	bufOpts   []buffer.Option
	matchCase bool
	useRegexp bool
	readOnly  bool
	log       *zap.Logger

	// Change callbacks run after the write lock is released. pending
	// collects the changes made while it is held.
	callbacks      []changeCallback
	nextCallbackID CallbackID
	pending        []Change

	// Initialization
	initContent string
	closed      bool
	lastSel     Selection
}

// CallbackID identifies a callback registered with OnChange.
type CallbackID uint64

type changeCallback struct {
	id CallbackID
	fn func(Change)
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		markers:   make(map[string]*buffer.TrackingRange),
		matchCase: true,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// init creates the buffer and the caret at the start of it.
func (e *Engine) init(content string) {
	opts := append([]buffer.Option{buffer.WithLogger(e.log)}, e.bufOpts...)
	e.buf = buffer.NewFromString(content, opts...)
	e.buf.Subscribe(func(c Change) {
		e.pending = append(e.pending, c)
	})
	// NewCursor only fails without a buffer.
	e.cur, _ = cursor.NewCursor(e.buf, cursor.NewCaret(0))
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.init(e.initContent)
	return e
}

// NewFromReader creates an Engine holding the UTF-8 text read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	e := newEngine(opts)
	e.init(string(data))
	return e, nil
}

// Buffer returns the underlying buffer. Callers that use it directly
// bypass the engine's locking.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the entire buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// TextRange returns the text in [begin, end).
func (e *Engine) TextRange(begin, end int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.GetText(begin, end)
}

// Len returns the buffer length in code units.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the content of a line without its EOL code.
func (e *Engine) LineText(line int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// LineRange returns the range of a line.
func (e *Engine) LineRange(line int, includeEOL bool) (LineRange, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.GetLineRange(line, includeEOL)
}

// OffsetToPoint converts an offset to a line/column position.
func (e *Engine) OffsetToPoint(offset int) (Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts a line/column position to an offset.
func (e *Engine) PointToOffset(p Point) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PointToOffset(p)
}

// RevisionID returns the current revision of the buffer.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// Snapshot returns an immutable copy of the current content that may be
// read from any goroutine.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// DirtyStates returns the dirty state letters of all lines.
func (e *Engine) DirtyStates() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.DirtyStates()
}

// MarkSaved moves every dirty line to the cleaned state.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.MarkAllCleaned()
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Edit Operations
// ============================================================================

// writable reports why the engine cannot be written, if it cannot.
// Callers hold the write lock.
func (e *Engine) writable() error {
	switch {
	case e.closed:
		return ErrClosed
	case e.readOnly:
		return ErrReadOnly
	}
	return nil
}

// Insert inserts text at offset and returns the end of the inserted text.
func (e *Engine) Insert(offset int, text string) (int, error) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return offset, err
	}
	return e.buf.Insert(offset, text)
}

// Delete removes the text in [begin, end).
func (e *Engine) Delete(begin, end int) error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	return e.buf.Remove(begin, end)
}

// Replace replaces [begin, end) with text and returns the end of the new
// text.
func (e *Engine) Replace(begin, end int, text string) (int, error) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return begin, err
	}
	return e.buf.Replace(begin, end, text)
}

// ApplyEdit applies a single edit.
func (e *Engine) ApplyEdit(edit Edit) (EditResult, error) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return EditResult{}, err
	}
	return e.buf.ApplyEdit(edit)
}

// ApplyEdits applies edits given in reverse document order as one atomic
// batch.
func (e *Engine) ApplyEdits(edits []Edit) error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	return e.buf.ApplyEdits(edits)
}

// InsertText replaces the selection with text, leaving a caret after it.
func (e *Engine) InsertText(text string) error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	sel := e.cur.Selection()
	_, err := e.buf.Replace(sel.Begin(), sel.End(), text)
	return err
}

// DeleteBackward removes the selection, or the character before the caret.
func (e *Engine) DeleteBackward() error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	sel := e.cur.Selection()
	if sel.IsEmpty() {
		return e.buf.Remove(e.buf.PrevCharIndex(sel.Caret), sel.Caret)
	}
	return e.buf.Remove(sel.Begin(), sel.End())
}

// DeleteForward removes the selection, or the character after the caret.
func (e *Engine) DeleteForward() error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	sel := e.cur.Selection()
	if sel.IsEmpty() {
		return e.buf.Remove(sel.Caret, e.buf.NextCharIndex(sel.Caret))
	}
	return e.buf.Remove(sel.Begin(), sel.End())
}

// Clear removes all content and moves the caret to the start.
func (e *Engine) Clear() error {
	return e.SetContent("")
}

// SetContent replaces all content and moves the caret to the start.
// Markers collapse to the end of the new content.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if err := e.writable(); err != nil {
		return err
	}
	e.buf.SetText(content)
	return e.cur.Set(cursor.NewCaret(0))
}

// OnChange registers fn to be called after every edit. Callbacks run on
// the goroutine that made the edit once the engine is unlocked, so they
// may read from or edit the engine.
func (e *Engine) OnChange(fn func(Change)) CallbackID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextCallbackID++
	e.callbacks = append(e.callbacks, changeCallback{id: e.nextCallbackID, fn: fn})
	return e.nextCallbackID
}

// RemoveOnChange unregisters a callback added with OnChange.
func (e *Engine) RemoveOnChange(id CallbackID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, cb := range e.callbacks {
		if cb.id == id {
			e.callbacks = slices.Delete(e.callbacks, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("change callback %d: %w", id, buffer.ErrStaleHandle)
}

// unlockAndNotify releases the write lock and then passes the changes
// made under it to the change callbacks.
func (e *Engine) unlockAndNotify() {
	changes := e.pending
	e.pending = nil
	var callbacks []changeCallback
	if len(changes) > 0 {
		callbacks = slices.Clone(e.callbacks)
	}
	e.mu.Unlock()

	for _, c := range changes {
		for _, cb := range callbacks {
			cb.fn(c)
		}
	}
}

// ============================================================================
// Selection
// ============================================================================

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection()
}

// selection returns the live selection, or the one held when the engine
// was closed.
func (e *Engine) selection() Selection {
	if e.closed {
		return e.lastSel
	}
	return e.cur.Selection()
}

// SetSelection moves the selection, snapping it onto character boundaries.
func (e *Engine) SetSelection(sel Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.cur.Set(sel)
}

// SelectedText returns the text of the selection.
func (e *Engine) SelectedText() (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sel := e.selection()
	return e.buf.GetText(sel.Begin(), sel.End())
}

// MoveLeft moves the caret one character back.
func (e *Engine) MoveLeft(extend bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.cur.MoveLeft(extend)
}

// MoveRight moves the caret one character forward.
func (e *Engine) MoveRight(extend bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.cur.MoveRight(extend)
}

// MoveLines moves the caret delta lines down, or up when delta is negative.
func (e *Engine) MoveLines(delta int, extend bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.cur.MoveLines(delta, extend)
}

// SelectWord selects the word around the caret.
func (e *Engine) SelectWord() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.cur.SelectWord()
}

// ============================================================================
// Markers
// ============================================================================

// AddMarker registers a named range that follows edits according to mode.
func (e *Engine) AddMarker(name string, begin, end int, mode Mode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if _, ok := e.markers[name]; ok {
		return fmt.Errorf("marker %q: %w", name, ErrMarkerExists)
	}
	tr, err := e.buf.Track(begin, end, mode)
	if err != nil {
		return fmt.Errorf("marker %q: %w", name, err)
	}
	e.markers[name] = tr
	e.log.Debug("marker added",
		zap.String("name", name),
		zap.Stringer("range", tr),
		zap.Stringer("mode", mode))
	return nil
}

// Marker returns the current range of a marker.
func (e *Engine) Marker(name string) (Range, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tr, ok := e.markers[name]
	if !ok {
		return Range{}, fmt.Errorf("marker %q: %w", name, ErrMarkerNotFound)
	}
	return tr.Range()
}

// MarkerText returns the text currently covered by a marker.
func (e *Engine) MarkerText(name string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tr, ok := e.markers[name]
	if !ok {
		return "", fmt.Errorf("marker %q: %w", name, ErrMarkerNotFound)
	}
	return tr.Text()
}

// RemoveMarker releases a marker.
func (e *Engine) RemoveMarker(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tr, ok := e.markers[name]
	if !ok {
		return fmt.Errorf("marker %q: %w", name, ErrMarkerNotFound)
	}
	delete(e.markers, name)
	e.log.Debug("marker removed", zap.String("name", name))
	return tr.Release()
}

// Markers returns the sorted marker names.
func (e *Engine) Markers() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Sorted(maps.Keys(e.markers))
}

// ============================================================================
// Search
// ============================================================================

// Find searches forward from the end of the selection and selects the
// match. It returns nil when nothing matches.
func (e *Engine) Find(pattern string) (*SearchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	from := e.cur.Selection().End()
	return e.find(pattern, from, e.buf.Len(), false)
}

// FindBackward searches backward from the begin of the selection and
// selects the match. It returns nil when nothing matches.
func (e *Engine) FindBackward(pattern string) (*SearchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	to := e.cur.Selection().Begin()
	return e.find(pattern, 0, to, true)
}

// FindAll returns every non-overlapping match in the buffer without
// moving the selection.
func (e *Engine) FindAll(pattern string) ([]Range, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []Range
	for pos := 0; pos < e.buf.Len(); {
		res, err := e.search(pattern, pos, e.buf.Len(), false)
		if err != nil {
			return nil, err
		}
		if res == nil {
			break
		}
		out = append(out, res.Range)
		pos = max(res.End, e.buf.NextCharIndex(res.Begin))
	}
	return out, nil
}

// find runs a search with the configured defaults and selects the result.
// Callers hold the write lock.
func (e *Engine) find(pattern string, begin, end int, backward bool) (*SearchResult, error) {
	res, err := e.search(pattern, begin, end, backward)
	if err != nil || res == nil {
		return nil, err
	}
	e.log.Debug("match found",
		zap.String("pattern", pattern),
		zap.Stringer("range", res.Range),
		zap.Bool("backward", backward))
	if err := e.cur.Set(cursor.NewRangeSelection(res.Range)); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) search(pattern string, begin, end int, backward bool) (*SearchResult, error) {
	if !e.useRegexp {
		if backward {
			return e.buf.FindPrev(pattern, begin, end, e.matchCase)
		}
		return e.buf.FindNext(pattern, begin, end, e.matchCase)
	}

	var opts []search.RegexpOption
	if !e.matchCase {
		opts = append(opts, search.IgnoreCase())
	}
	if backward {
		opts = append(opts, search.RightToLeft())
	}
	re, err := search.Compile(pattern, opts...)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w: %w", pattern, buffer.ErrInvalidArgument, err)
	}
	if backward {
		return e.buf.FindPrevRegexp(re, begin, end)
	}
	return e.buf.FindNextRegexp(re, begin, end)
}

// ============================================================================
// Lifecycle
// ============================================================================

// Close releases the selection and every marker. Reads keep working and
// Selection keeps reporting the last selection; edits, moves and searches
// return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.lastSel = e.cur.Selection()
	e.closed = true
	for name, tr := range e.markers {
		_ = tr.Release()
		delete(e.markers, name)
	}
	return e.cur.Release()
}

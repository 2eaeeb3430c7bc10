// Package engine provides the text engine facade used by textcore tools.
//
// The engine package combines a gap buffer with a live selection, named
// markers and configured search defaults behind one synchronized API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - gap: generic gap buffer storage
//   - textutil: UTF-16 and grapheme cluster helpers
//   - search: literal and regexp matching over the two stored segments
//   - tracking: boundary policies for ranges that follow edits
//   - buffer: the text buffer with its line index and tracking ranges
//   - cursor: anchor/caret selections and a cursor that follows edits
//
// # Thread Safety
//
// A buffer.Buffer has no locking. Engine adds a read-write mutex so reads
// may run concurrently while writes are serialized. Change callbacks
// registered with OnChange run after the write lock is released, on the
// goroutine that made the edit, and may call back into the Engine.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello, World!"))
//
//	e.Replace(7, 12, "Go")       // "Hello, Go!"
//	e.SetSelection(engine.NewCaret(5))
//	e.InsertText(" there")       // "Hello there, Go!"
//
//	res, _ := e.Find("go")       // selects "Go" when matching ignores case
//
// # Markers
//
// Markers are named ranges that follow edits according to a tracking mode:
//
//	e.AddMarker("todo", 0, 5, tracking.Outward)
//	e.Insert(0, ">> ")
//	r, _ := e.Marker("todo") // [3:8)
//
// Markers live until RemoveMarker or Close.
package engine

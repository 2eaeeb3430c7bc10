// Package gap provides a generic gap buffer: a growable sequence with a
// single movable unused region ("gap") placed at the most recent edit point.
//
// Inserting or removing elements next to the gap costs O(1); relocating the
// gap costs O(distance). Sequences of edits clustered around one position,
// such as typing, are therefore amortized O(1) per element.
//
// Basic usage:
//
//	b := gap.NewOrdered[int]()
//	_ = b.Insert(0, 1, 2, 4)
//	_ = b.Insert(2, 3)        // [1 2 3 4]
//	_ = b.RemoveRange(0, 2)   // [3 4]
//	i, found, _ := b.BinarySearch(4)
//
// Index arguments are validated before any mutation. Insertion points must
// lie in [0, Len()], element positions in [0, Len()). Violations return
// ErrIndexOutOfRange and leave the buffer untouched.
//
// A Buffer is not safe for concurrent use.
package gap

package gap

import (
	"cmp"
	"errors"
	"fmt"
	"io"
)

// Errors returned by gap buffer operations.
var (
	// ErrIndexOutOfRange indicates an index or range outside the buffer.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotOrderable indicates BinarySearch was called on a buffer
	// created without an ordering.
	ErrNotOrderable = errors.New("elements are not orderable")
)

// Buffer is a sequence of T with a relocatable gap.
//
// Logical index i maps to physical slot i when i < gapBegin, and to
// i + (gapEnd - gapBegin) otherwise.
type Buffer[T any] struct {
	data     []T
	gapBegin int
	gapEnd   int

	growthFactor float64
	slack        int
	compare      func(a, b T) int
}

// New creates an empty buffer. BinarySearch returns ErrNotOrderable on
// buffers created with New; use NewOrdered or NewFunc for searchable ones.
func New[T any](opts ...Option) *Buffer[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Buffer[T]{
		data:         make([]T, cfg.capacity),
		gapBegin:     0,
		gapEnd:       cfg.capacity,
		growthFactor: cfg.growthFactor,
		slack:        cfg.slack,
	}
}

// NewOrdered creates an empty buffer of naturally ordered elements.
func NewOrdered[T cmp.Ordered](opts ...Option) *Buffer[T] {
	b := New[T](opts...)
	b.compare = cmp.Compare[T]
	return b
}

// NewFunc creates an empty buffer ordered by compare, which must return a
// negative number, zero or a positive number like cmp.Compare.
func NewFunc[T any](compare func(a, b T) int, opts ...Option) *Buffer[T] {
	b := New[T](opts...)
	b.compare = compare
	return b
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data) - b.gapLen()
}

// Capacity returns the number of allocated slots.
func (b *Buffer[T]) Capacity() int {
	return len(b.data)
}

func (b *Buffer[T]) gapLen() int {
	return b.gapEnd - b.gapBegin
}

func (b *Buffer[T]) physical(i int) int {
	if i < b.gapBegin {
		return i
	}
	return i + b.gapLen()
}

func (b *Buffer[T]) checkElement(i int) error {
	if i < 0 || i >= b.Len() {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, b.Len())
	}
	return nil
}

func (b *Buffer[T]) checkRange(begin, end int) error {
	if begin < 0 || end < begin || end > b.Len() {
		return fmt.Errorf("%w: range [%d:%d), length %d", ErrIndexOutOfRange, begin, end, b.Len())
	}
	return nil
}

// At returns the element at i.
func (b *Buffer[T]) At(i int) (T, error) {
	if err := b.checkElement(i); err != nil {
		var zero T
		return zero, err
	}
	return b.data[b.physical(i)], nil
}

// Get returns the element at i. Like slice indexing, it panics when i is
// out of range; use At for checked access.
func (b *Buffer[T]) Get(i int) T {
	if err := b.checkElement(i); err != nil {
		panic(err)
	}
	return b.data[b.physical(i)]
}

// Set replaces the element at i.
func (b *Buffer[T]) Set(i int, v T) error {
	if err := b.checkElement(i); err != nil {
		return err
	}
	b.data[b.physical(i)] = v
	return nil
}

// Insert inserts items before index i. i may equal Len().
func (b *Buffer[T]) Insert(i int, items ...T) error {
	if err := b.checkRange(i, i); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	b.ensureGap(len(items))
	b.moveGap(i)
	copy(b.data[b.gapBegin:], items)
	b.gapBegin += len(items)
	return nil
}

// Append adds items to the end of the buffer.
func (b *Buffer[T]) Append(items ...T) {
	// Len() is always a valid insertion point.
	_ = b.Insert(b.Len(), items...)
}

// RemoveAt removes the element at i.
func (b *Buffer[T]) RemoveAt(i int) error {
	if err := b.checkElement(i); err != nil {
		return err
	}
	return b.RemoveRange(i, i+1)
}

// RemoveRange removes the elements in [begin, end).
func (b *Buffer[T]) RemoveRange(begin, end int) error {
	if err := b.checkRange(begin, end); err != nil {
		return err
	}
	if begin == end {
		return nil
	}
	b.moveGap(begin)
	clear(b.data[b.gapEnd : b.gapEnd+end-begin])
	b.gapEnd += end - begin
	return nil
}

// Clear removes all elements but keeps the allocation.
func (b *Buffer[T]) Clear() {
	clear(b.data)
	b.gapBegin = 0
	b.gapEnd = len(b.data)
}

// CopyTo copies the elements in [begin, end) into dst and returns the
// number of elements copied. dst must hold at least end-begin elements.
func (b *Buffer[T]) CopyTo(begin, end int, dst []T) (int, error) {
	if err := b.checkRange(begin, end); err != nil {
		return 0, err
	}
	if len(dst) < end-begin {
		return 0, io.ErrShortBuffer
	}
	first, second := b.segments(begin, end)
	n := copy(dst, first)
	n += copy(dst[n:], second)
	return n, nil
}

// Slice returns a copy of the elements in [begin, end).
func (b *Buffer[T]) Slice(begin, end int) ([]T, error) {
	if err := b.checkRange(begin, end); err != nil {
		return nil, err
	}
	out := make([]T, end-begin)
	first, second := b.segments(begin, end)
	n := copy(out, first)
	copy(out[n:], second)
	return out, nil
}

// ToSlice returns a copy of all elements.
func (b *Buffer[T]) ToSlice() []T {
	out, _ := b.Slice(0, b.Len())
	return out
}

// Segments returns the elements in [begin, end) as at most two views into
// the backing storage: the part before the gap and the part after it.
// The views are invalidated by the next mutation and must not be modified.
func (b *Buffer[T]) Segments(begin, end int) (first, second []T, err error) {
	if err := b.checkRange(begin, end); err != nil {
		return nil, nil, err
	}
	first, second = b.segments(begin, end)
	return first, second, nil
}

func (b *Buffer[T]) segments(begin, end int) (first, second []T) {
	switch {
	case end <= b.gapBegin:
		return b.data[begin:end], nil
	case begin >= b.gapBegin:
		return b.data[b.physical(begin):b.physical(end)], nil
	default:
		return b.data[begin:b.gapBegin], b.data[b.gapEnd:b.physical(end)]
	}
}

// BinarySearch searches the buffer, which must be sorted by the buffer's
// ordering, for v. It returns the position where v is found, or where it
// would be inserted, and whether it was found.
func (b *Buffer[T]) BinarySearch(v T) (int, bool, error) {
	if b.compare == nil {
		return 0, false, ErrNotOrderable
	}
	lo, hi := 0, b.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := b.compare(b.data[b.physical(mid)], v)
		switch {
		case c == 0:
			return mid, true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false, nil
}

// moveGap relocates the gap so that it begins at logical index i, shifting
// the elements between the old and new gap position across it.
func (b *Buffer[T]) moveGap(i int) {
	switch {
	case i < b.gapBegin:
		n := b.gapBegin - i
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[i:b.gapBegin])
		clear(b.data[i:min(b.gapBegin, b.gapEnd-n)])
		b.gapBegin -= n
		b.gapEnd -= n
	case i > b.gapBegin:
		n := i - b.gapBegin
		copy(b.data[b.gapBegin:b.gapBegin+n], b.data[b.gapEnd:b.gapEnd+n])
		clear(b.data[max(b.gapEnd, b.gapBegin+n) : b.gapEnd+n])
		b.gapBegin += n
		b.gapEnd += n
	}
}

// ensureGap grows the backing storage so the gap holds at least n slots.
func (b *Buffer[T]) ensureGap(n int) {
	if b.gapLen() >= n {
		return
	}
	needed := b.Len() + n
	newCap := max(needed, int(float64(len(b.data))*b.growthFactor)) + b.slack

	data := make([]T, newCap)
	copy(data, b.data[:b.gapBegin])
	tail := len(b.data) - b.gapEnd
	copy(data[newCap-tail:], b.data[b.gapEnd:])
	b.data = data
	b.gapEnd = newCap - tail
}

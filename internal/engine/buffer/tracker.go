package buffer

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/tracking"
)

// TrackerID identifies a tracking range registered with a buffer. The low
// 32 bits are the slot index and the high 32 bits its generation, so an
// ID stays invalid once its slot is released and reused.
type TrackerID uint64

func makeTrackerID(slot int, gen uint32) TrackerID {
	return TrackerID(uint64(gen)<<32 | uint64(uint32(slot)))
}

func (id TrackerID) slot() int      { return int(uint32(id)) }
func (id TrackerID) gen() uint32    { return uint32(id >> 32) }
func (id TrackerID) String() string { return fmt.Sprintf("tracker#%d.%d", id.slot(), id.gen()) }

type trackerSlot struct {
	begin, end int
	mode       tracking.Mode
	gen        uint32
	live       bool
}

// TrackingRange is a range that follows edits of its buffer. Its bounds
// live in the buffer; the TrackingRange is a handle to them and must be
// released with Release when no longer needed.
type TrackingRange struct {
	buf *Buffer
	id  TrackerID
}

// NewTrackingRange registers a tracking range over [begin, end) of b.
// A nil buffer is ErrInvalidArgument.
func NewTrackingRange(b *Buffer, begin, end int, mode tracking.Mode) (*TrackingRange, error) {
	if b == nil {
		return nil, fmt.Errorf("tracking range without buffer: %w", ErrInvalidArgument)
	}
	return b.Track(begin, end, mode)
}

// Track registers a tracking range over [begin, end).
func (b *Buffer) Track(begin, end int, mode tracking.Mode) (*TrackingRange, error) {
	if err := b.checkRange(begin, end); err != nil {
		return nil, err
	}

	s := trackerSlot{begin: begin, end: end, mode: mode, live: true}
	var slot int
	if n := len(b.freeTrackers); n > 0 {
		slot = b.freeTrackers[n-1]
		b.freeTrackers = b.freeTrackers[:n-1]
		s.gen = b.trackers[slot].gen + 1
		b.trackers[slot] = s
	} else {
		slot = len(b.trackers)
		b.trackers = append(b.trackers, s)
	}
	return &TrackingRange{buf: b, id: makeTrackerID(slot, s.gen)}, nil
}

// TrackerCount returns the number of live tracking ranges.
func (b *Buffer) TrackerCount() int {
	return len(b.trackers) - len(b.freeTrackers)
}

// lookup returns the live slot of id.
func (b *Buffer) lookup(id TrackerID) (*trackerSlot, error) {
	i := id.slot()
	if i >= len(b.trackers) {
		return nil, fmt.Errorf("%s: %w", id, ErrStaleHandle)
	}
	s := &b.trackers[i]
	if !s.live || s.gen != id.gen() {
		return nil, fmt.Errorf("%s: %w", id, ErrStaleHandle)
	}
	return s, nil
}

// Untrack releases the tracking range with the given id.
func (b *Buffer) Untrack(id TrackerID) error {
	s, err := b.lookup(id)
	if err != nil {
		return err
	}
	s.live = false
	b.freeTrackers = append(b.freeTrackers, id.slot())
	return nil
}

// TrackedRange returns the current bounds of a tracking range.
func (b *Buffer) TrackedRange(id TrackerID) (Range, error) {
	s, err := b.lookup(id)
	if err != nil {
		return Range{}, err
	}
	return Range{Begin: s.begin, End: s.end, buf: b}, nil
}

// adjustTrackers relocates every live tracking range after an edit.
func (b *Buffer) adjustTrackers(d tracking.Delta) {
	for i := range b.trackers {
		s := &b.trackers[i]
		if !s.live {
			continue
		}
		s.begin, s.end = tracking.Adjust(s.begin, s.end, s.mode, d)
	}
}

// ID returns the handle of the tracking range.
func (t *TrackingRange) ID() TrackerID {
	return t.id
}

// Buffer returns the buffer the range tracks.
func (t *TrackingRange) Buffer() *Buffer {
	return t.buf
}

// IsLive returns false once the range was released.
func (t *TrackingRange) IsLive() bool {
	_, err := t.buf.lookup(t.id)
	return err == nil
}

// Begin returns the current begin offset, or -1 if the range was released.
func (t *TrackingRange) Begin() int {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return -1
	}
	return s.begin
}

// End returns the current end offset, or -1 if the range was released.
func (t *TrackingRange) End() int {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return -1
	}
	return s.end
}

// Len returns the current length, or 0 if the range was released.
func (t *TrackingRange) Len() int {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return 0
	}
	return s.end - s.begin
}

// Range returns the current bounds as a bound Range.
func (t *TrackingRange) Range() (Range, error) {
	return t.buf.TrackedRange(t.id)
}

// Text returns the current text of the range.
func (t *TrackingRange) Text() (string, error) {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return "", err
	}
	return t.buf.GetText(s.begin, s.end)
}

// Mode returns the tracking mode.
func (t *TrackingRange) Mode() tracking.Mode {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return tracking.None
	}
	return s.mode
}

// SetMode changes the tracking mode.
func (t *TrackingRange) SetMode(mode tracking.Mode) error {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// Set moves the range to [begin, end).
func (t *TrackingRange) Set(begin, end int) error {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return err
	}
	if err := t.buf.checkRange(begin, end); err != nil {
		return err
	}
	s.begin, s.end = begin, end
	return nil
}

// Release unregisters the range. Releasing twice is ErrStaleHandle.
func (t *TrackingRange) Release() error {
	return t.buf.Untrack(t.id)
}

// String returns a human-readable representation of the range.
func (t *TrackingRange) String() string {
	s, err := t.buf.lookup(t.id)
	if err != nil {
		return fmt.Sprintf("%s(released)", t.id)
	}
	return fmt.Sprintf("[%d:%d) %s", s.begin, s.end, s.mode)
}

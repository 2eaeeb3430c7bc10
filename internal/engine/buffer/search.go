package buffer

import (
	"errors"
	"fmt"

	"github.com/dshills/textcore/internal/engine/search"
	"github.com/dshills/textcore/internal/engine/textutil"
)

// SearchResult is a match found in a buffer.
type SearchResult struct {
	Range
}

// segments returns the stored units of [begin, end) without copying.
func (b *Buffer) segments(begin, end int) (search.Segments, error) {
	first, second, err := b.text.Segments(begin, end)
	if err != nil {
		return search.Segments{}, fmt.Errorf("search range [%d, %d): %w", begin, end, ErrIndexOutOfRange)
	}
	return search.Segments{First: first, Second: second, Base: begin}, nil
}

func (b *Buffer) result(begin, end int) *SearchResult {
	return &SearchResult{Range: Range{Begin: begin, End: end, buf: b}}
}

// FindNext returns the first occurrence of pattern inside [begin, end),
// or nil. An empty range finds nothing; an empty pattern matches at begin.
func (b *Buffer) FindNext(pattern string, begin, end int, matchCase bool) (*SearchResult, error) {
	s, err := b.segments(begin, end)
	if err != nil {
		return nil, err
	}
	if begin == end {
		return nil, nil
	}
	p := textutil.Encode(pattern)
	i := search.Index(s, p, matchCase)
	if i < 0 {
		return nil, nil
	}
	return b.result(i, i+len(p)), nil
}

// FindPrev returns the last occurrence of pattern inside [begin, end), or
// nil. An empty range finds nothing; an empty pattern matches at end.
func (b *Buffer) FindPrev(pattern string, begin, end int, matchCase bool) (*SearchResult, error) {
	s, err := b.segments(begin, end)
	if err != nil {
		return nil, err
	}
	if begin == end {
		return nil, nil
	}
	p := textutil.Encode(pattern)
	i := search.LastIndex(s, p, matchCase)
	if i < 0 {
		return nil, nil
	}
	return b.result(i, i+len(p)), nil
}

// FindNextRegexp returns the leftmost match of re inside [begin, end), or
// nil. re must not be right-to-left.
func (b *Buffer) FindNextRegexp(re *search.Regexp, begin, end int) (*SearchResult, error) {
	if re == nil {
		return nil, fmt.Errorf("find next: %w", ErrInvalidArgument)
	}
	if re.RightToLeft() {
		return nil, fmt.Errorf("find next %q: %w: %w", re, ErrInvalidArgument, search.ErrDirection)
	}
	return b.findRegexp(re, begin, end, search.Find)
}

// FindPrevRegexp returns the rightmost match of re inside [begin, end), or
// nil. re must be right-to-left.
func (b *Buffer) FindPrevRegexp(re *search.Regexp, begin, end int) (*SearchResult, error) {
	if re == nil {
		return nil, fmt.Errorf("find prev: %w", ErrInvalidArgument)
	}
	if !re.RightToLeft() {
		return nil, fmt.Errorf("find prev %q: %w: %w", re, ErrInvalidArgument, search.ErrDirection)
	}
	return b.findRegexp(re, begin, end, search.FindLast)
}

type regexpFinder func(search.Segments, *search.Regexp) (int, int, bool, error)

func (b *Buffer) findRegexp(re *search.Regexp, begin, end int, find regexpFinder) (*SearchResult, error) {
	s, err := b.segments(begin, end)
	if err != nil {
		return nil, err
	}
	if begin == end {
		return nil, nil
	}
	mb, me, ok, err := find(s, re)
	if err != nil {
		if errors.Is(err, search.ErrDirection) || errors.Is(err, search.ErrNilRegexp) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return b.result(mb, me), nil
}

package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	grinning = "\U0001F600"
	thumbsUp = "\U0001F44D\U0001F3FD"
	family   = "\U0001F468\u200d\U0001F469\u200d\U0001F467"
)

func units(s string) Slice {
	return Slice(Encode(s))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "he\u0301llo", "a" + grinning + "b", "日本語\r\n"} {
		assert.Equal(t, s, Decode(Encode(s)), "round trip of %q", s)
	}
}

func TestDecodeUnpairedSurrogates(t *testing.T) {
	assert.Equal(t, "a�b", Decode([]uint16{'a', 0xD800, 'b'}))
	assert.Equal(t, "�", Decode([]uint16{0xDC00}))
	assert.Equal(t, "x�", Decode([]uint16{'x', 0xD83D}))
}

func TestDecodeAcrossSegments(t *testing.T) {
	pair := Encode(grinning)
	require.Len(t, pair, 2)
	assert.Equal(t, "a"+grinning, Decode([]uint16{'a', pair[0]}, []uint16{pair[1]}))
}

func TestRuneAt(t *testing.T) {
	u := units("a" + grinning)
	r, w := RuneAt(u, 1)
	assert.Equal(t, '\U0001F600', r)
	assert.Equal(t, 2, w)

	r, w = RuneAt(u, 2)
	assert.Equal(t, '�', r)
	assert.Equal(t, 1, w)
}

func TestSurrogatePredicates(t *testing.T) {
	pair := Encode(grinning)
	assert.True(t, IsHighSurrogate(pair[0]))
	assert.True(t, IsLowSurrogate(pair[1]))
	assert.False(t, IsHighSurrogate('a'))
	assert.False(t, IsLowSurrogate(pair[0]))
	assert.True(t, IsCombiningMark('\u0301'))
	assert.False(t, IsCombiningMark('e'))
	assert.True(t, IsEOLChar('\r'))
	assert.False(t, IsEOLChar('x'))
}

func TestUnitLen(t *testing.T) {
	assert.Equal(t, 0, UnitLen(""))
	assert.Equal(t, 3, UnitLen("abc"))
	assert.Equal(t, 4, UnitLen("a"+grinning+"b"))
}

func TestClusterBounds(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		i          int
		begin, end int
	}{
		{"ascii", "hello", 1, 1, 2},
		{"surrogate high half", "a" + grinning + "b", 1, 1, 3},
		{"surrogate low half", "a" + grinning + "b", 2, 1, 3},
		{"combining base", "he\u0301llo", 1, 1, 3},
		{"combining mark", "he\u0301llo", 2, 1, 3},
		{"multiple marks", "e\u0327\u0301x", 2, 0, 3},
		{"crlf", "ab\r\ncd", 3, 2, 4},
		{"lone cr", "ab\rcd", 2, 2, 3},
		{"end of text", "abc", 3, 3, 3},
		{"zwj family", "x" + family + "y", 3, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin, end := ClusterBounds(units(tt.text), tt.i)
			assert.Equal(t, tt.begin, begin, "begin")
			assert.Equal(t, tt.end, end, "end")
		})
	}
}

func TestClusterLen(t *testing.T) {
	u := units("a" + grinning + "e\u0301")
	assert.Equal(t, 1, ClusterLen(u, 0))
	assert.Equal(t, 2, ClusterLen(u, 1))
	assert.Equal(t, 2, ClusterLen(u, 3))
	assert.Equal(t, 0, ClusterLen(u, 5))
}

func TestPrevNextBoundary(t *testing.T) {
	u := units("a" + grinning + "e\u0301z")
	assert.Equal(t, 1, NextBoundary(u, 0))
	assert.Equal(t, 3, NextBoundary(u, 1))
	assert.Equal(t, 3, NextBoundary(u, 2))
	assert.Equal(t, 5, NextBoundary(u, 3))
	assert.Equal(t, 6, NextBoundary(u, 6))

	assert.Equal(t, 3, PrevBoundary(u, 5))
	assert.Equal(t, 1, PrevBoundary(u, 3))
	assert.Equal(t, 0, PrevBoundary(u, 1))
	assert.Equal(t, 0, PrevBoundary(u, 0))
}

func TestIsUndividableIndex(t *testing.T) {
	u := units("a" + grinning + "\r\ne\u0301")
	want := []bool{false, false, true, false, true, false, true, false}
	for i, w := range want {
		assert.Equal(t, w, IsUndividableIndex(u, i), "index %d", i)
	}
}

func TestConstrainIndex(t *testing.T) {
	u := units("ab" + grinning + "ce\u0301f")

	// An end inside a surrogate pair keeps the whole pair.
	b, e := ConstrainIndex(u, 1, 3)
	assert.Equal(t, 1, b)
	assert.Equal(t, 4, e)

	b, e = ConstrainIndex(u, 3, 6)
	assert.Equal(t, 2, b)
	assert.Equal(t, 7, e)

	b, e = ConstrainIndex(u, 2, 3)
	assert.Equal(t, 2, b)
	assert.Equal(t, 2, e)

	// Both ends inside the same cluster collapse onto its start.
	b, e = ConstrainIndex(u, 3, 3)
	assert.Equal(t, 2, b)
	assert.Equal(t, 2, e)

	b, e = ConstrainIndex(u, 6, 8)
	assert.Equal(t, 5, b)
	assert.Equal(t, 8, e)
}

func TestConstrainIndexNeverSplitsClusters(t *testing.T) {
	u := units("x" + grinning + "\u0301e\u0301\u0302\r\n" + thumbsUp + "y")
	for begin := 0; begin <= u.Len(); begin++ {
		for end := begin; end <= u.Len(); end++ {
			b, e := ConstrainIndex(u, begin, end)
			require.LessOrEqual(t, b, e)
			require.True(t, IsClusterBoundary(u, b), "begin %d -> %d", begin, b)
			require.True(t, IsClusterBoundary(u, e), "end %d -> %d", end, e)
			if b > 0 && b < u.Len() {
				require.False(t, IsHighSurrogate(u[b-1]) && IsLowSurrogate(u[b]), "begin %d inside pair", b)
			}
		}
	}
}

func TestSnapForward(t *testing.T) {
	u := units("a" + grinning + "e\u0301")
	assert.Equal(t, 0, SnapForward(u, 0))
	assert.Equal(t, 3, SnapForward(u, 2))
	assert.Equal(t, 5, SnapForward(u, 4))
	assert.Equal(t, 5, SnapForward(u, 5))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindWord, KindOf("a"))
	assert.Equal(t, KindWord, KindOf("e\u0301"))
	assert.Equal(t, KindWord, KindOf("7"))
	assert.Equal(t, KindSpace, KindOf(" "))
	assert.Equal(t, KindEOL, KindOf("\r\n"))
	assert.Equal(t, KindPunct, KindOf("."))
	assert.Equal(t, KindOther, KindOf(""))
	assert.Equal(t, "punct", KindPunct.String())
}

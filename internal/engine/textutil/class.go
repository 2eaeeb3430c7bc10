package textutil

import "unicode"

// Kind groups clusters for word boundary decisions.
type Kind uint8

const (
	KindSpace Kind = iota
	KindWord
	KindPunct
	KindEOL
	KindOther
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSpace:
		return "space"
	case KindWord:
		return "word"
	case KindPunct:
		return "punct"
	case KindEOL:
		return "eol"
	default:
		return "other"
	}
}

// KindOf classifies a grapheme cluster by its first rune.
func KindOf(cluster string) Kind {
	for _, r := range cluster {
		switch {
		case r == '\r' || r == '\n':
			return KindEOL
		case unicode.IsSpace(r):
			return KindSpace
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			return KindWord
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			return KindPunct
		default:
			return KindOther
		}
	}
	return KindOther
}

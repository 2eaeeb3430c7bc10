package search

import (
	"errors"
	"regexp"
)

// Errors returned by regexp search.
var (
	// ErrDirection indicates a regexp whose scan direction does not match
	// the requested search direction.
	ErrDirection = errors.New("regexp scan direction does not match search direction")

	// ErrNilRegexp indicates a missing regexp.
	ErrNilRegexp = errors.New("regexp is nil")
)

// Regexp is a compiled regular expression with a scan direction.
type Regexp struct {
	re          *regexp.Regexp
	last        *regexp.Regexp // (?s:.*)(expr), whose group 1 is the rightmost match
	rightToLeft bool
}

// RegexpOption configures Compile.
type RegexpOption func(*regexpConfig)

type regexpConfig struct {
	ignoreCase  bool
	rightToLeft bool
}

// IgnoreCase makes the expression match case-insensitively.
func IgnoreCase() RegexpOption {
	return func(c *regexpConfig) { c.ignoreCase = true }
}

// RightToLeft marks the expression for backward searches.
func RightToLeft() RegexpOption {
	return func(c *regexpConfig) { c.rightToLeft = true }
}

// Compile parses expr using RE2 syntax.
func Compile(expr string, opts ...RegexpOption) (*Regexp, error) {
	var cfg regexpConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ignoreCase {
		expr = "(?i:" + expr + ")"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	last, err := regexp.Compile(`(?s:.*)(` + expr + `)`)
	if err != nil {
		return nil, err
	}
	return &Regexp{re: re, last: last, rightToLeft: cfg.rightToLeft}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts ...RegexpOption) *Regexp {
	re, err := Compile(expr, opts...)
	if err != nil {
		panic(err)
	}
	return re
}

// RightToLeft reports whether the expression is meant for backward searches.
func (r *Regexp) RightToLeft() bool {
	return r.rightToLeft
}

// WithDirection returns a copy of r with the given scan direction.
func (r *Regexp) WithDirection(rightToLeft bool) *Regexp {
	return &Regexp{re: r.re, last: r.last, rightToLeft: rightToLeft}
}

// String returns the source text of the expression.
func (r *Regexp) String() string {
	return r.re.String()
}

// Find returns the leftmost match of r in s as logical offsets.
func Find(s Segments, r *Regexp) (begin, end int, ok bool, err error) {
	if r == nil {
		return 0, 0, false, ErrNilRegexp
	}
	if r.rightToLeft {
		return 0, 0, false, ErrDirection
	}
	begin, end, ok = find(s, r)
	return begin, end, ok, nil
}

// FindLast returns the match of r in s that starts rightmost, as logical
// offsets. The text is read once from the start of s, so anchors such as
// ^ and \b see the same left context as in Find.
func FindLast(s Segments, r *Regexp) (begin, end int, ok bool, err error) {
	if r == nil {
		return 0, 0, false, ErrNilRegexp
	}
	if !r.rightToLeft {
		return 0, 0, false, ErrDirection
	}
	loc := r.last.FindReaderSubmatchIndex(&unitReader{s: s, end: s.Len()})
	if loc == nil || loc[2] < 0 {
		return 0, 0, false, nil
	}
	return s.Base + loc[2], s.Base + loc[3], true, nil
}

func find(s Segments, r *Regexp) (int, int, bool) {
	loc := r.re.FindReaderIndex(&unitReader{s: s, end: s.Len()})
	if loc == nil {
		return 0, 0, false
	}
	return s.Base + loc[0], s.Base + loc[1], true
}

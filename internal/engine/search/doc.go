// Package search finds literal strings and regular expressions in UTF-16
// text that is split across the two physical segments of a gap buffer.
//
// Matching reads the segments in place through Segments; the searched
// range is never joined into a contiguous copy. Regular expressions are fed
// to the standard regexp engine through an io.RuneReader whose rune widths
// are reported in UTF-16 code units, so match positions come back as code
// unit offsets directly.
//
// Each Regexp carries a scan direction. Forward searches require a
// left-to-right expression and backward searches a right-to-left one; a
// mismatch is reported as ErrDirection rather than silently corrected.
package search

// Package textutil provides character-boundary arithmetic over UTF-16 code
// unit sequences.
//
// Text in the engine is stored as UTF-16 code units, so a user-perceived
// character may span several units: a surrogate pair, a base character
// followed by combining marks, a CR LF pair or a longer emoji sequence.
// The functions in this package measure and snap offsets to grapheme
// cluster boundaries so that a caret never lands inside such a character.
//
// Cluster segmentation follows Unicode UAX #29 via github.com/rivo/uniseg.
// Only a small window around the queried offset is decoded: the window is
// widened until both ends sit on positions that are boundaries regardless
// of context (next to a control character, or between two ASCII
// characters).
package textutil

package tracking

// Mode selects how range boundaries react to an edit exactly at them.
type Mode uint8

const (
	// None disables tracking; the range never moves.
	None Mode = iota
	// Backward keeps both boundaries in front of text inserted at them.
	Backward
	// Forward moves both boundaries behind text inserted at them.
	Forward
	// Inward lets the range exclude text inserted at either boundary.
	Inward
	// Outward lets the range absorb text inserted at either boundary.
	Outward
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	case Inward:
		return "inward"
	case Outward:
		return "outward"
	default:
		return "unknown"
	}
}

// BeginFollows reports whether the begin boundary moves past text
// inserted exactly at it.
func (m Mode) BeginFollows() bool {
	return m == Forward || m == Inward
}

// EndFollows reports whether the end boundary moves past text inserted
// exactly at it.
func (m Mode) EndFollows() bool {
	return m == Forward || m == Outward
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, bool) {
	for m := None; m <= Outward; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return None, false
}

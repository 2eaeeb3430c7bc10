package tracking

// AdjustOffset relocates a single offset across d. follow decides the
// ambiguous case of an edit exactly at the offset.
func AdjustOffset(p int, d Delta, follow bool) int {
	removedEnd := d.Index + d.Removed
	switch {
	case p < d.Index:
		return p
	case p == d.Index:
		if follow {
			return d.Index + d.Inserted
		}
		return p
	case p >= removedEnd:
		return p + d.Shift()
	default:
		return d.Index + d.Inserted
	}
}

// Adjust relocates [begin, end) across d according to mode. The result
// depends only on its arguments.
func Adjust(begin, end int, mode Mode, d Delta) (int, int) {
	if mode == None {
		return begin, end
	}
	nb := AdjustOffset(begin, d, mode.BeginFollows())
	ne := AdjustOffset(end, d, mode.EndFollows())
	if nb > ne {
		// An empty Inward range with text inserted at it.
		ne = nb
	}
	return nb, ne
}

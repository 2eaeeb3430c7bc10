// Package tracking relocates text ranges across edits.
//
// An edit is described by a Delta: at Index, Removed code units were
// deleted and Inserted code units put in their place. Adjust recomputes a
// [begin, end) range from that payload alone, so a set of ranges updated
// for the same edit ends up in the same state whatever order they are
// visited in.
//
// # Boundary modes
//
// Offsets before the edit never move, offsets after the removed text shift
// by Inserted-Removed, and offsets inside the removed text land at the end
// of the inserted text. An edit exactly at a boundary is ambiguous; the
// Mode decides whether that boundary stays put or follows the insertion:
//
//	Mode      begin    end
//	Backward  stays    stays
//	Forward   follows  follows
//	Inward    follows  stays
//	Outward   stays    follows
//
// Inward ranges therefore never grow from an edit at a boundary and
// Outward ranges never shrink. None disables tracking altogether.
package tracking

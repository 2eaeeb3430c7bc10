package gap

import (
	"slices"
	"testing"
)

// FuzzEdits applies a byte-coded edit script to a gap buffer and to a plain
// slice and checks that both agree after every step.
func FuzzEdits(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5})
	f.Add([]byte{9, 9, 9, 200, 1, 17, 3})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, script []byte) {
		b := New[byte](WithCapacity(1), WithGrowthSlack(0))
		var want []byte

		for i := 0; i+1 < len(script); i += 2 {
			op, arg := script[i], script[i+1]
			switch op % 3 {
			case 0, 1:
				pos := int(arg) % (len(want) + 1)
				if err := b.Insert(pos, arg, op); err != nil {
					t.Fatalf("insert at %d failed: %v", pos, err)
				}
				want = slices.Insert(want, pos, arg, op)
			case 2:
				if len(want) == 0 {
					continue
				}
				begin := int(arg) % len(want)
				end := min(len(want), begin+int(op%5))
				if err := b.RemoveRange(begin, end); err != nil {
					t.Fatalf("remove [%d:%d) failed: %v", begin, end, err)
				}
				want = slices.Delete(want, begin, end)
			}

			if b.Len() != len(want) {
				t.Fatalf("length mismatch: got %d, want %d", b.Len(), len(want))
			}
		}

		if got := b.ToSlice(); !slices.Equal(got, want) {
			t.Fatalf("content mismatch: got %v, want %v", got, want)
		}
	})
}

package gap

import "testing"

func BenchmarkTyping(b *testing.B) {
	buf := New[uint16]()
	for i := 0; i < 100_000; i++ {
		buf.Append('x')
	}
	b.ResetTimer()
	pos := 50_000
	for i := 0; i < b.N; i++ {
		_ = buf.Insert(pos, 'a')
		pos++
		if i%80 == 79 {
			_ = buf.RemoveAt(pos - 1)
			pos--
		}
	}
}

func BenchmarkScatteredInsert(b *testing.B) {
	buf := New[uint16]()
	for i := 0; i < 100_000; i++ {
		buf.Append('x')
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Insert((i*7919)%buf.Len(), 'a')
	}
}

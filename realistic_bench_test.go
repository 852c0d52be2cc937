package dsbuf

import (
	"testing"
)

func newBenchBuffer(b *testing.B, descriptors int) *Buffer {
	b.Helper()
	cfg := DefaultConfig()
	cfg.ArenaCapacity *= 64
	cfg.MaxDescriptors = descriptors
	cfg.LoggingEnabled = false
	buf, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	if err := buf.Initialize(nil); err != nil {
		b.Fatal(err)
	}
	return buf
}

// BenchmarkRealisticUsage covers the allocation patterns a fixed buffer is
// meant for.
func BenchmarkRealisticUsage(b *testing.B) {
	// Test 1: one message buffer allocated and released per iteration.
	b.Run("MallocFree/Reuse", func(b *testing.B) {
		buf := newBenchBuffer(b, 10)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var h Handle
			if err := buf.Malloc(&h, 128); err != nil {
				b.Fatal(err)
			}
			if err := buf.Free(&h); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("MallocFree/Builtin", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = make([]byte, 128)
		}
	})

	// Test 2: a full table of live blocks, freed and refilled in bursts.
	b.Run("Burst/FullTable", func(b *testing.B) {
		const slots = 32
		buf := newBenchBuffer(b, slots)
		handles := make([]Handle, slots)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range handles {
				if err := buf.Malloc(&handles[j], 64); err != nil {
					b.Fatal(err)
				}
			}
			for j := range handles {
				if err := buf.Free(&handles[j]); err != nil {
					b.Fatal(err)
				}
			}
		}
	})

	// Test 3: zeroed allocations.
	b.Run("Calloc", func(b *testing.B) {
		buf := newBenchBuffer(b, 10)
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var h Handle
			if err := buf.Calloc(&h, 32, 8); err != nil {
				b.Fatal(err)
			}
			if err := buf.Free(&h); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Test 4: accounting queries on a busy table.
	b.Run("Stats", func(b *testing.B) {
		buf := newBenchBuffer(b, 64)
		for i := 0; i < 64; i++ {
			var h Handle
			if err := buf.Malloc(&h, 16); err != nil {
				b.Fatal(err)
			}
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := buf.Stats(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkSafeBufferConcurrent(b *testing.B) {
	cfg := DefaultConfig()
	cfg.ArenaCapacity *= 64
	cfg.MaxDescriptors = 256
	cfg.LoggingEnabled = false
	s, err := NewSafe(cfg)
	if err != nil {
		b.Fatal(err)
	}
	if err := s.Initialize(nil); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var h Handle
			if s.Malloc(&h, 64) == nil {
				_ = s.Free(&h)
			}
		}
	})
}

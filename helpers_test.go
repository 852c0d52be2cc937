package dsbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder collects every message passed to its LogFn.
type recorder struct {
	msgs []string
}

func (r *recorder) logFn() LogFn {
	return func(msg string, length int) {
		if length == 0 {
			return
		}
		r.msgs = append(r.msgs, msg)
	}
}

// newTestBuffer returns an initialized buffer with the default limits
// (1024 byte arena, 10 descriptors, 256 byte max allocation).
func newTestBuffer(t testing.TB) (*Buffer, *recorder) {
	t.Helper()
	return newTestBufferWith(t, DefaultConfig())
}

func newTestBufferWith(t testing.TB, cfg Config) (*Buffer, *recorder) {
	t.Helper()
	b, err := New(cfg)
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, b.Initialize(rec.logFn()))
	return b, rec
}

// mustMalloc allocates size bytes into a fresh handle.
func mustMalloc(t testing.TB, b *Buffer, size int) Handle {
	t.Helper()
	var h Handle
	require.NoError(t, b.Malloc(&h, size))
	require.False(t, h.IsNil())
	return h
}

// assertInvariants checks the descriptor table against the arena: claimed
// slots form a prefix, non-unused regions lie below the frontier and never
// overlap.
func assertInvariants(t testing.TB, b *Buffer) {
	t.Helper()
	tb := &b.table
	require.LessOrEqual(t, b.arena.frontier, b.arena.capacity(), "frontier past capacity")
	for i := range tb.slots {
		d := tb.slots[i]
		if i >= tb.used {
			require.Equal(t, StatusUnused, d.status, "slot %d past used prefix is %s", i, d.status)
			continue
		}
		require.NotEqual(t, StatusUnused, d.status, "slot %d inside used prefix is unused", i)
		require.GreaterOrEqual(t, d.size, 1, "slot %d has empty size", i)
		require.LessOrEqual(t, d.size, b.maxAlloc, "slot %d larger than max allocation", i)
		require.LessOrEqual(t, d.offset+d.size, b.arena.frontier, "slot %d extends past frontier", i)
		for j := 0; j < i; j++ {
			o := tb.slots[j]
			overlap := d.offset < o.offset+o.size && o.offset < d.offset+d.size
			require.False(t, overlap, "slots %d [%d,%d) and %d [%d,%d) overlap",
				j, o.offset, o.offset+o.size, i, d.offset, d.offset+d.size)
		}
	}
}

package dsbuf

import (
	"testing"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
	}{
		{"one byte", 1},
		{"default", 1024},
		{"large", 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(tt.capacity)
			if a.capacity() != tt.capacity {
				t.Errorf("newArena(%d) capacity = %d, want %d", tt.capacity, a.capacity(), tt.capacity)
			}
			if a.remaining() != tt.capacity {
				t.Errorf("newArena(%d) remaining = %d, want %d", tt.capacity, a.remaining(), tt.capacity)
			}
			if a.frontier != 0 {
				t.Errorf("newArena(%d) frontier = %d, want 0", tt.capacity, a.frontier)
			}
		})
	}
}

func TestArenaClaim(t *testing.T) {
	a := newArena(1024)

	if off := a.claim(100); off != 0 {
		t.Errorf("first claim offset = %d, want 0", off)
	}
	if off := a.claim(50); off != 100 {
		t.Errorf("second claim offset = %d, want 100", off)
	}
	if a.frontier != 150 {
		t.Errorf("frontier = %d, want 150", a.frontier)
	}
	if a.remaining() != 874 {
		t.Errorf("remaining = %d, want 874", a.remaining())
	}
}

func TestArenaExtend(t *testing.T) {
	a := newArena(1024)
	a.claim(100)

	a.extend(50)
	if a.frontier != 100 {
		t.Errorf("extend below frontier moved it to %d", a.frontier)
	}
	a.extend(300)
	if a.frontier != 300 {
		t.Errorf("extend(300) frontier = %d, want 300", a.frontier)
	}
}

func TestArenaContains(t *testing.T) {
	a := newArena(16)

	tests := []struct {
		off  int
		want bool
	}{
		{-1, false},
		{0, true},
		{15, true},
		{16, false},
		{1 << 30, false},
	}
	for _, tt := range tests {
		if got := a.contains(tt.off); got != tt.want {
			t.Errorf("contains(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestArenaRegion(t *testing.T) {
	a := newArena(64)
	r := a.region(8, 16)

	if len(r) != 16 {
		t.Errorf("region length = %d, want 16", len(r))
	}
	if cap(r) != 16 {
		t.Errorf("region capacity = %d, want 16", cap(r))
	}

	// Writes land in the backing storage.
	r[0] = 0xAB
	if a.buf[8] != 0xAB {
		t.Errorf("region does not alias arena storage")
	}

	// Appending must not overwrite the neighbouring byte.
	_ = append(r, 0xFF)
	if a.buf[24] != 0 {
		t.Errorf("append to region spilled into arena byte 24")
	}
}

func TestArenaReset(t *testing.T) {
	a := newArena(32)
	off := a.claim(10)
	copy(a.region(off, 10), "0123456789")

	a.reset()

	if a.frontier != 0 {
		t.Errorf("frontier after reset = %d, want 0", a.frontier)
	}
	for i, v := range a.buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %d after reset, want 0", i, v)
		}
	}
}

package dsbuf

// arena is the fixed backing region of a Buffer. Bytes below frontier
// have been claimed by some descriptor at least once; bytes at or above
// it have never been handed out. The frontier only moves forward until
// the arena is reset.
type arena struct {
	buf      []byte // backing memory, never reallocated
	frontier int    // first never-claimed offset
}

func newArena(capacity int) arena {
	return arena{buf: make([]byte, capacity)}
}

// capacity returns the fixed size of the region in bytes.
func (a *arena) capacity() int {
	return len(a.buf)
}

// remaining returns the number of bytes that have never been claimed.
func (a *arena) remaining() int {
	return len(a.buf) - a.frontier
}

// claim bumps the frontier by n bytes and returns the offset of the
// claimed range. The caller must have checked remaining() first.
func (a *arena) claim(n int) int {
	off := a.frontier
	a.frontier += n
	return off
}

// extend moves the frontier forward to end if end lies beyond it.
func (a *arena) extend(end int) {
	if end > a.frontier {
		a.frontier = end
	}
}

// contains reports whether off addresses a byte inside the region.
func (a *arena) contains(off int) bool {
	return off >= 0 && off < len(a.buf)
}

// region returns the n bytes at off. The capacity of the returned slice is
// clamped so appends cannot spill into a neighbouring block.
func (a *arena) region(off, n int) []byte {
	return a.buf[off : off+n : off+n]
}

// reset zeroes the storage and rewinds the frontier.
func (a *arena) reset() {
	clear(a.buf)
	a.frontier = 0
}

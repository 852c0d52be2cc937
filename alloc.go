package dsbuf

import (
	"fmt"
	"math"
	"math/bits"
)

// Malloc places a block of size bytes in the arena and binds it to *h.
// *h must be the null handle; a handle still bound to an allocation has to
// be freed before it can be reused.
//
// Free descriptors are reused first-fit without splitting: the first
// released block large enough for the request is taken and shrunk to the
// requested size, the remainder being unusable until the block is freed
// again. Otherwise a fresh descriptor is claimed at the bump frontier.
func (b *Buffer) Malloc(h *Handle, size int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if h == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParams)
	}
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidParams, size)
	}
	if !h.IsNil() {
		return ErrPointerAlreadyAllocated
	}
	if size > b.maxAlloc {
		return fmt.Errorf("%w: %d > %d", ErrTooBigChunk, size, b.maxAlloc)
	}

	i, off, err := b.place(size)
	if err != nil {
		return err
	}
	gen := b.table.allocate(i, off, size)
	*h = Handle{off: off, gen: gen, valid: true}
	return nil
}

// place finds room for size bytes and returns the descriptor slot and
// arena offset to use. Claiming a new slot advances the frontier; nothing
// else is mutated.
func (b *Buffer) place(size int) (slot, off int, err error) {
	if i := b.table.reusable(size); i >= 0 {
		return i, b.table.slots[i].offset, nil
	}

	i := b.table.unused()
	if i < 0 {
		b.log("no free descriptors")
		return 0, 0, ErrNoAllocators
	}
	if b.arena.remaining() < size {
		b.logf("out of memory: requested %d, remaining %d", size, b.arena.remaining())
		return 0, 0, fmt.Errorf("%w: requested %d, remaining %d", ErrOutOfMemory, size, b.arena.remaining())
	}
	return i, b.arena.claim(size), nil
}

// Calloc allocates count elements of elemSize bytes each and zero-fills
// the region. A product that overflows is rejected as invalid.
func (b *Buffer) Calloc(h *Handle, count, elemSize int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if h == nil || count <= 0 || elemSize <= 0 {
		return fmt.Errorf("%w: calloc(%d, %d)", ErrInvalidParams, count, elemSize)
	}
	hi, lo := bits.Mul64(uint64(count), uint64(elemSize))
	if hi != 0 || lo > math.MaxInt {
		return fmt.Errorf("%w: calloc(%d, %d) overflows", ErrInvalidParams, count, elemSize)
	}

	if err := b.Malloc(h, int(lo)); err != nil {
		return err
	}
	clear(b.arena.region(h.off, int(lo)))
	return nil
}

// Realloc changes the size of the block bound to *h.
//
// Shrinking always happens in place. Growing happens in place when the
// block is the last one claimed from the arena and the region still has
// room past it; otherwise a new block is allocated, min(old, new) bytes are
// copied and the old block is freed, and *h is rebound to the new block.
// If no new block can be placed, the error is returned and *h still
// refers to the untouched original.
func (b *Buffer) Realloc(h *Handle, size int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if h == nil || h.IsNil() {
		return fmt.Errorf("%w: nil handle", ErrInvalidParams)
	}
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidParams, size)
	}
	if size > b.maxAlloc {
		return fmt.Errorf("%w: %d > %d", ErrTooBigChunk, size, b.maxAlloc)
	}
	i, err := b.resolve(*h)
	if err != nil {
		return err
	}

	d := &b.table.slots[i]
	if size <= d.size {
		d.size = size
		return nil
	}
	if b.table.last(i) && d.offset+size <= b.arena.capacity() {
		d.size = size
		b.arena.extend(d.offset + size)
		return nil
	}

	var moved Handle
	if err := b.Malloc(&moved, size); err != nil {
		return err
	}
	// Malloc never hands out a slot that is still allocated, so d is intact.
	copy(b.arena.region(moved.off, size), b.arena.region(d.offset, d.size))
	b.table.release(i)
	b.logf("realloc relocated block 0x%04x -> 0x%04x", h.off, moved.off)
	*h = moved
	return nil
}

// Free releases the block bound to *h and sets *h to the null handle. The
// descriptor keeps its size so a later request that fits can reuse it.
func (b *Buffer) Free(h *Handle) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if h == nil || h.IsNil() {
		return fmt.Errorf("%w: nil handle", ErrInvalidParams)
	}
	i, err := b.resolve(*h)
	if err != nil {
		return err
	}
	b.table.release(i)
	*h = Handle{}
	return nil
}

// Bytes returns the region bound to h. The slice aliases the arena and is
// only meaningful until h is freed or reallocated.
func (b *Buffer) Bytes(h Handle) ([]byte, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if h.IsNil() {
		return nil, fmt.Errorf("%w: nil handle", ErrInvalidParams)
	}
	i, err := b.resolve(h)
	if err != nil {
		return nil, err
	}
	d := &b.table.slots[i]
	return b.arena.region(d.offset, d.size), nil
}

// resolve maps a non-null handle to the allocated descriptor it refers to.
func (b *Buffer) resolve(h Handle) (int, error) {
	if !b.arena.contains(h.off) {
		b.log("pointer is not allocated in buffer")
		return -1, fmt.Errorf("%w: offset %d", ErrOutsideArena, h.off)
	}
	i := b.table.lookup(h.off)
	if i < 0 {
		b.logf("no allocated block at offset 0x%04x", h.off)
		return -1, fmt.Errorf("%w: no allocated block at offset %d", ErrInvalidParams, h.off)
	}
	if h.gen != 0 && h.gen != b.table.slots[i].gen {
		b.logf("stale handle for block at offset 0x%04x", h.off)
		return -1, fmt.Errorf("%w: stale handle for offset %d", ErrInvalidParams, h.off)
	}
	return i, nil
}

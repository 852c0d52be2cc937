package dsbuf

import "fmt"

// UsagePercent returns the share of the arena held by allocated blocks,
// rounded down to a whole percent.
func (b *Buffer) UsagePercent() (uint8, error) {
	if !b.initialized {
		return 0, ErrNotInitialized
	}
	used, err := b.allocatedBytes()
	if err != nil {
		return 0, err
	}
	return uint8(used * 100 / b.arena.capacity()), nil
}

// allocatedBytes sums the sizes of all allocated blocks. A sum larger than
// the arena can only come from a corrupted table.
func (b *Buffer) allocatedBytes() (int, error) {
	used := 0
	for i := 0; i < b.table.used; i++ {
		if d := &b.table.slots[i]; d.status == StatusAllocated {
			used += d.size
		}
	}
	if used > b.arena.capacity() {
		b.log("critical: usage exceeds capacity")
		return 0, fmt.Errorf("%w: %d bytes allocated in a %d byte arena", ErrCritical, used, b.arena.capacity())
	}
	return used, nil
}

// MaxNewAllocationSize returns the largest request Malloc can currently
// place, either by reusing a free block or from the never-claimed tail of
// the arena, capped at the configured max allocation size. It does not
// account for descriptor exhaustion: Malloc may still fail with
// ErrNoAllocators.
func (b *Buffer) MaxNewAllocationSize() (int, error) {
	if !b.initialized {
		return 0, ErrNotInitialized
	}
	return b.maxNewAllocation(), nil
}

func (b *Buffer) maxNewAllocation() int {
	largest := 0
	for i := 0; i < b.table.used; i++ {
		if d := &b.table.slots[i]; d.status == StatusFree && d.size > largest {
			largest = d.size
		}
	}
	return min(max(largest, b.arena.remaining()), b.maxAlloc)
}

// FreeDescriptorCount returns the number of descriptor slots that have
// never been claimed. Released slots awaiting reuse are not counted.
func (b *Buffer) FreeDescriptorCount() (int, error) {
	if !b.initialized {
		return 0, ErrNotInitialized
	}
	return b.table.count(StatusUnused), nil
}

// Stats is a point-in-time snapshot of a Buffer's accounting.
type Stats struct {
	Capacity             int     // Arena size in bytes
	Frontier             int     // Bytes ever claimed from the arena
	AllocatedBytes       int     // Bytes held by allocated blocks
	UsagePercent         uint8   // AllocatedBytes as a whole percent of Capacity
	Utilization          float64 // AllocatedBytes / Capacity (0.0-1.0)
	MaxNewAllocation     int     // Largest request that can currently be placed
	MaxDescriptors       int     // Size of the descriptor table
	UnusedDescriptors    int     // Slots never claimed
	FreeDescriptors      int     // Released slots awaiting reuse
	AllocatedDescriptors int     // Slots bound to live handles
}

// Stats returns a snapshot of the buffer's accounting.
func (b *Buffer) Stats() (Stats, error) {
	if !b.initialized {
		return Stats{}, ErrNotInitialized
	}
	used, err := b.allocatedBytes()
	if err != nil {
		return Stats{}, err
	}
	capacity := b.arena.capacity()
	return Stats{
		Capacity:             capacity,
		Frontier:             b.arena.frontier,
		AllocatedBytes:       used,
		UsagePercent:         uint8(used * 100 / capacity),
		Utilization:          float64(used) / float64(capacity),
		MaxNewAllocation:     b.maxNewAllocation(),
		MaxDescriptors:       len(b.table.slots),
		UnusedDescriptors:    b.table.count(StatusUnused),
		FreeDescriptors:      b.table.count(StatusFree),
		AllocatedDescriptors: b.table.count(StatusAllocated),
	}, nil
}

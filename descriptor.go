package dsbuf

// Status is the lifecycle state of a descriptor slot.
type Status uint8

const (
	// StatusUnused marks a slot that has never described a block.
	StatusUnused Status = iota
	// StatusFree marks a released block kept for reuse.
	StatusFree
	// StatusAllocated marks a block owned by a live handle.
	StatusAllocated
)

func (s Status) String() string {
	switch s {
	case StatusUnused:
		return "unused"
	case StatusFree:
		return "free"
	case StatusAllocated:
		return "allocated"
	default:
		return "invalid"
	}
}

// descriptor records one region carved from the arena. offset and size
// are meaningful only when status is not StatusUnused.
type descriptor struct {
	offset int
	size   int
	status Status
	gen    uint32 // bumped every time the slot becomes allocated
}

// table is the fixed-capacity descriptor array. Slots are claimed left to
// right and never reordered, so every slot at index >= used is unused.
type table struct {
	slots []descriptor
	used  int
}

func newTable(n int) table {
	return table{slots: make([]descriptor, n)}
}

// reusable returns the index of the first free descriptor able to hold
// size bytes, or -1.
func (t *table) reusable(size int) int {
	for i := range t.slots {
		d := &t.slots[i]
		if d.status == StatusUnused {
			break
		}
		if d.status == StatusFree && d.size >= size {
			return i
		}
	}
	return -1
}

// unused returns the index of the first never-claimed slot, or -1 when
// the table is full.
func (t *table) unused() int {
	if t.used >= len(t.slots) {
		return -1
	}
	return t.used
}

// lookup returns the index of the allocated descriptor starting at off, or -1.
func (t *table) lookup(off int) int {
	for i := 0; i < t.used; i++ {
		d := &t.slots[i]
		if d.status == StatusAllocated && d.offset == off {
			return i
		}
	}
	return -1
}

// allocate marks slot i allocated with the given placement and returns the
// slot's new generation.
func (t *table) allocate(i, off, size int) uint32 {
	d := &t.slots[i]
	d.offset = off
	d.size = size
	d.status = StatusAllocated
	d.gen++
	if i >= t.used {
		t.used = i + 1
	}
	return d.gen
}

// release marks slot i free, keeping its size for first-fit reuse.
func (t *table) release(i int) {
	t.slots[i].status = StatusFree
}

// last reports whether slot i is the most recently claimed slot, i.e. the
// block that sits directly below the frontier.
func (t *table) last(i int) bool {
	return i == t.used-1
}

// count returns the number of slots in state s.
func (t *table) count(s Status) int {
	n := 0
	for i := range t.slots {
		if t.slots[i].status == s {
			n++
		}
	}
	return n
}

func (t *table) reset() {
	clear(t.slots)
	t.used = 0
}

package dsbuf

import "fmt"

// Handle is the caller's reference to an allocated region. The zero value
// is the null handle. A handle returned by Malloc, Calloc or Realloc is
// valid until it is passed to Free, which resets it to null.
type Handle struct {
	off   int
	gen   uint32
	valid bool
}

// NewHandle returns an untagged handle for a raw arena offset. Untagged
// handles are matched against the descriptor table by offset only, so a
// stale offset whose slot was reused will address the new block.
func NewHandle(offset int) Handle {
	return Handle{off: offset, valid: true}
}

// IsNil reports whether h is the null handle.
func (h Handle) IsNil() bool {
	return !h.valid
}

// Offset returns the arena offset addressed by h, or -1 for the null handle.
func (h Handle) Offset() int {
	if !h.valid {
		return -1
	}
	return h.off
}

func (h Handle) String() string {
	if !h.valid {
		return "<nil>"
	}
	return fmt.Sprintf("0x%04x", h.off)
}

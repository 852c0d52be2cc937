package dsbuf

import "sync"

// SafeBuffer is a mutex-protected wrapper around Buffer for concurrent
// access. Every operation holds the lock for its whole scan-and-mutate
// sequence. The logger is invoked with the lock held and must not call
// back into the SafeBuffer.
type SafeBuffer struct {
	mu sync.Mutex
	b  *Buffer
}

// NewSafe creates a thread-safe Buffer with the limits in cfg.
func NewSafe(cfg Config) (*SafeBuffer, error) {
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &SafeBuffer{b: b}, nil
}

// Config returns the limits the buffer was created with.
func (s *SafeBuffer) Config() Config {
	return s.b.Config()
}

// Initialized thread-safely reports whether the buffer is initialized.
func (s *SafeBuffer) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Initialized()
}

// Initialize thread-safely initializes the buffer.
func (s *SafeBuffer) Initialize(logger LogFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Initialize(logger)
}

// ResetForTests thread-safely returns the buffer to the uninitialized state.
func (s *SafeBuffer) ResetForTests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.ResetForTests()
}

// Malloc thread-safely allocates size bytes into *h.
func (s *SafeBuffer) Malloc(h *Handle, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Malloc(h, size)
}

// Calloc thread-safely allocates count*elemSize zeroed bytes into *h.
func (s *SafeBuffer) Calloc(h *Handle, count, elemSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Calloc(h, count, elemSize)
}

// Realloc thread-safely resizes the block bound to *h.
func (s *SafeBuffer) Realloc(h *Handle, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Realloc(h, size)
}

// Free thread-safely releases the block bound to *h.
func (s *SafeBuffer) Free(h *Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Free(h)
}

// Bytes thread-safely returns the region bound to h. The caller is
// responsible for not using the slice concurrently with a Free or Realloc
// of the same handle.
func (s *SafeBuffer) Bytes(h Handle) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Bytes(h)
}

// UsagePercent thread-safely returns the allocated share of the arena.
func (s *SafeBuffer) UsagePercent() (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.UsagePercent()
}

// MaxNewAllocationSize thread-safely returns the largest placeable request.
func (s *SafeBuffer) MaxNewAllocationSize() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.MaxNewAllocationSize()
}

// FreeDescriptorCount thread-safely returns the number of never-claimed slots.
func (s *SafeBuffer) FreeDescriptorCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.FreeDescriptorCount()
}

// Stats thread-safely returns a snapshot of the buffer's accounting.
func (s *SafeBuffer) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Stats()
}

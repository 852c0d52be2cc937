package dsbuf

import "fmt"

// Buffer emulates malloc/free inside a single fixed region. It owns the
// arena, the descriptor table and the initialization flag. A Buffer is
// not goroutine-safe; use SafeBuffer for concurrent access.
type Buffer struct {
	cfg         Config
	maxAlloc    int
	arena       arena
	table       table
	initialized bool
	logger      LogFn
}

// New creates a Buffer with the limits in cfg. The region is reserved up
// front and never grows. The Buffer must be initialized before use.
func New(cfg Config) (*Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dsbuf: %w", err)
	}
	return &Buffer{
		cfg:      cfg,
		maxAlloc: cfg.maxAllocation(),
		arena:    newArena(cfg.capacity()),
		table:    newTable(cfg.MaxDescriptors),
	}, nil
}

// Config returns the limits the Buffer was created with.
func (b *Buffer) Config() Config {
	return b.cfg
}

// Initialized reports whether Initialize has succeeded since creation or
// the last reset.
func (b *Buffer) Initialized() bool {
	return b.initialized
}

// Initialize zeroes the arena and descriptor table and enables the other
// operations. When logging is enabled logger must not be nil. The logger
// is stored even when the buffer turns out to be initialized already.
func (b *Buffer) Initialize(logger LogFn) error {
	if b.cfg.LoggingEnabled && logger == nil {
		return fmt.Errorf("%w: logger is required when logging is enabled", ErrInvalidParams)
	}
	b.logger = logger

	if b.initialized {
		b.log("buffer already initialized")
		return ErrAlreadyInitialized
	}

	b.arena.reset()
	b.table.reset()
	b.initialized = true
	b.log("initialized")
	return nil
}

// ResetForTests drops every allocation and returns the buffer to the
// uninitialized state. Handles obtained before the reset must not be used.
func (b *Buffer) ResetForTests() {
	b.initialized = false
	b.arena.reset()
	b.table.reset()
	b.logger = nil
}

// log forwards msg to the configured logger.
func (b *Buffer) log(msg string) {
	if !b.cfg.LoggingEnabled || b.logger == nil {
		return
	}
	b.logger(msg, len(msg))
}

func (b *Buffer) logf(format string, args ...any) {
	if !b.cfg.LoggingEnabled || b.logger == nil {
		return
	}
	b.log(fmt.Sprintf(format, args...))
}

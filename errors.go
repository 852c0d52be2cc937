package dsbuf

import "errors"

var (
	// ErrNotInitialized indicates an operation was called before Initialize
	// or after ResetForTests.
	ErrNotInitialized = errors.New("dsbuf: buffer not initialized")

	// ErrAlreadyInitialized indicates Initialize was called twice without a reset.
	ErrAlreadyInitialized = errors.New("dsbuf: buffer already initialized")

	// ErrInvalidParams indicates a missing handle, a zero or negative size,
	// an overflowing calloc request, or a handle that matches no live block.
	ErrInvalidParams = errors.New("dsbuf: invalid parameters")

	// ErrOutOfMemory indicates the arena has no unclaimed space left for the request.
	ErrOutOfMemory = errors.New("dsbuf: no free memory in buffer")

	// ErrNoAllocators indicates every descriptor slot is in use.
	ErrNoAllocators = errors.New("dsbuf: no free descriptors")

	// ErrTooBigChunk indicates the request exceeds the configured max allocation size.
	ErrTooBigChunk = errors.New("dsbuf: requested chunk exceeds max allocation size")

	// ErrOutsideArena indicates a handle does not address memory inside the arena.
	ErrOutsideArena = errors.New("dsbuf: pointer outside buffer")

	// ErrCritical indicates the internal accounting is inconsistent.
	ErrCritical = errors.New("dsbuf: critical error")

	// ErrPointerAlreadyAllocated indicates the output handle already holds a
	// live allocation and must be freed first.
	ErrPointerAlreadyAllocated = errors.New("dsbuf: pointer already allocated")
)

// Code is the numeric error code of an operation, for embedders that
// report status as integers.
type Code uint8

const (
	CodeOK                      Code = 0x00
	CodeNotInitialized          Code = 0x01
	CodeInvalidParams           Code = 0x02
	CodeAlreadyInitialized      Code = 0x03
	CodeOutOfMemory             Code = 0x04
	CodeNoAllocators            Code = 0x05
	CodeTooBigChunk             Code = 0x06
	CodeOutsideArena            Code = 0x07
	CodeCritical                Code = 0x08
	CodePointerAlreadyAllocated Code = 0x09
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrNotInitialized, CodeNotInitialized},
	{ErrInvalidParams, CodeInvalidParams},
	{ErrAlreadyInitialized, CodeAlreadyInitialized},
	{ErrOutOfMemory, CodeOutOfMemory},
	{ErrNoAllocators, CodeNoAllocators},
	{ErrTooBigChunk, CodeTooBigChunk},
	{ErrOutsideArena, CodeOutsideArena},
	{ErrCritical, CodeCritical},
	{ErrPointerAlreadyAllocated, CodePointerAlreadyAllocated},
}

// CodeOf maps err to its Code. A nil error is CodeOK; errors that did not
// come from this package are reported as CodeCritical.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeCritical
}

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotInitialized:
		return "not_initialized"
	case CodeInvalidParams:
		return "invalid_params"
	case CodeAlreadyInitialized:
		return "already_initialized"
	case CodeOutOfMemory:
		return "out_of_memory"
	case CodeNoAllocators:
		return "no_allocators"
	case CodeTooBigChunk:
		return "too_big_chunk"
	case CodeOutsideArena:
		return "outside_arena"
	case CodeCritical:
		return "critical"
	case CodePointerAlreadyAllocated:
		return "pointer_already_allocated"
	default:
		return "unknown"
	}
}

// Package dsbuf emulates malloc/free inside a single fixed-size buffer.
//
// # Overview
//
// A Buffer reserves one byte region at construction and never asks the Go
// runtime for more. Allocations are tracked by a fixed table of
// descriptors, so both the memory and the number of live blocks are
// bounded and known up front. This suits code that must keep a
// predictable footprint:
//
//   - Firmware-style state machines ported to Go
//   - Real-time loops that must not trigger GC growth
//   - Simulating embedded allocators in tests
//
// # Basic Usage
//
//	buf, err := dsbuf.New(dsbuf.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := buf.Initialize(dsbuf.NewLogFn(logger)); err != nil {
//	    return err
//	}
//
//	var h dsbuf.Handle
//	if err := buf.Malloc(&h, 100); err != nil {
//	    return err
//	}
//	data, _ := buf.Bytes(h)
//	copy(data, payload)
//
//	// Release the block; h becomes the null handle.
//	err = buf.Free(&h)
//
// # Placement
//
// Requests are served first-fit from released blocks, in descriptor order,
// without splitting or coalescing. When no released block is large enough
// a new descriptor is claimed at the bump frontier. Bytes behind the
// frontier are never returned to it.
//
// # Errors
//
// Every operation returns one of the sentinel errors (possibly wrapped
// with detail); use errors.Is to test for them, or CodeOf for a numeric
// code. A failed operation leaves the buffer unchanged.
//
// # Thread Safety
//
// Buffer is not thread-safe. SafeBuffer wraps every operation in one mutex:
//
//	s, _ := dsbuf.NewSafe(dsbuf.DefaultConfig())
//	_ = s.Initialize(logFn)
//
// # Metrics
//
// NewCollector exports a buffer's Stats as Prometheus gauges:
//
//	prometheus.MustRegister(dsbuf.NewCollector(s, nil))
package dsbuf

// SPDX-License-Identifier: Apache-2.0

// Package alloc is a pluggable memory-allocation layer for generic
// containers. It provides the Allocator capability with a nil-means-heap
// fallback convention, a Pool arena that releases everything it ever
// handed out in a single step, and a FixedArray scratch buffer that avoids
// a heap round trip for small temporary arrays.
//
// Containers accept an optional Allocator and route every request through
// the package-level Alloc, Realloc, Free and Dup helpers. Passing a nil
// Allocator selects the Go heap, so callers that do not care about
// allocation strategy never have to branch on it. Callers that cannot
// trust the heap, such as a crash handler running after the heap may be
// corrupted, supply a Pool that was populated ahead of time.
package alloc

import "unsafe"

// Allocator describes a memory allocation capability.
//
// Regions are full-capped byte slices: appending to one can never spill
// into a neighbouring region. A nil result from Alloc or Realloc means
// the allocator is exhausted.
type Allocator interface {
	// Alloc returns a freshly allocated region of size bytes, or nil.
	// Whether the region is zeroed is up to the implementation.
	Alloc(size int) []byte

	// Realloc resizes a region previously returned by Alloc and may
	// return a different region. Implementations that cannot resize,
	// such as Pool, treat a call as a contract violation and panic
	// rather than corrupt adjacent regions.
	Realloc(mem []byte, size int) []byte

	// Free returns a region to the allocator. Free(nil) is a no-op.
	// Double frees are the caller's to avoid; implementations are not
	// required to detect them.
	Free(mem []byte)
}

// Alloc allocates size bytes from a, or from the Go heap when a is nil.
func Alloc(a Allocator, size int) []byte {
	if a == nil {
		return make([]byte, size)
	}
	return a.Alloc(size)
}

// Realloc resizes mem through a, or on the Go heap when a is nil. The
// heap path grows by copy when cap(mem) is too small, so the result may
// alias mem or may be a fresh region.
func Realloc(a Allocator, mem []byte, size int) []byte {
	if a == nil {
		return heapRealloc(mem, size)
	}
	return a.Realloc(mem, size)
}

// Free releases mem through a. When a is nil the garbage collector owns
// the region and there is nothing to do.
func Free(a Allocator, mem []byte) {
	if a != nil {
		a.Free(mem)
	}
}

// Dup allocates len(src)+padding bytes following the same fallback rule,
// copies src into the front of the new region and returns it. The copy is
// all or nothing: a nil return means the allocation failed and nothing
// was copied. The padding bytes carry whatever the allocator handed out.
func Dup(a Allocator, src []byte, padding int) []byte {
	mem := Alloc(a, len(src)+padding)
	if mem == nil {
		return nil
	}
	copy(mem, src)
	return mem
}

func heapRealloc(mem []byte, size int) []byte {
	if size <= cap(mem) {
		return mem[:size]
	}
	out := make([]byte, size)
	copy(out, mem)
	return out
}

// New allocates a zeroed T from a. If a is nil or exhausted it falls back
// to Go's built-in new. T must not require alignment stricter than 8
// bytes, which no primitive or pointer-sized Go type does.
func New[T any](a Allocator) *T {
	if a != nil {
		var zero T
		if mem := a.Alloc(int(unsafe.Sizeof(zero))); mem != nil {
			clear(mem)
			return (*T)(unsafe.Pointer(unsafe.SliceData(mem)))
		}
	}
	return new(T)
}

// SPDX-License-Identifier: Apache-2.0

package alloc

// CountingAllocator wraps an optional inner allocator and counts the
// traffic flowing through it. Tests use it to observe how a container
// allocates; it adds no behaviour of its own. With a nil inner allocator
// the counted requests go to the Go heap. Not safe for concurrent use.
type CountingAllocator struct {
	inner    Allocator
	allocs   int
	reallocs int
	frees    int
	bytes    int
}

// NewCountingAllocator returns a counting wrapper around inner, which may
// be nil for the heap fallback.
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	return &CountingAllocator{inner: inner}
}

func (c *CountingAllocator) Alloc(size int) []byte {
	mem := Alloc(c.inner, size)
	if mem != nil {
		c.allocs++
		c.bytes += size
	}
	return mem
}

func (c *CountingAllocator) Realloc(mem []byte, size int) []byte {
	out := Realloc(c.inner, mem, size)
	if out != nil {
		c.reallocs++
	}
	return out
}

func (c *CountingAllocator) Free(mem []byte) {
	if mem != nil {
		c.frees++
	}
	Free(c.inner, mem)
}

// Allocs returns the number of successful Alloc calls.
func (c *CountingAllocator) Allocs() int { return c.allocs }

// Reallocs returns the number of successful Realloc calls.
func (c *CountingAllocator) Reallocs() int { return c.reallocs }

// Frees returns the number of non-nil Free calls.
func (c *CountingAllocator) Frees() int { return c.frees }

// Bytes returns the total bytes handed out by Alloc.
func (c *CountingAllocator) Bytes() int { return c.bytes }

// Reset zeroes all counters.
func (c *CountingAllocator) Reset() {
	c.allocs, c.reallocs, c.frees, c.bytes = 0, 0, 0, 0
}

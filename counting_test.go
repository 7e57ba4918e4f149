// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountingAllocatorHeap(t *testing.T) {
	c := NewCountingAllocator(nil)

	mem := c.Alloc(10)
	require.Len(t, mem, 10)
	require.Equal(t, 1, c.Allocs())
	require.Equal(t, 10, c.Bytes())

	mem = c.Realloc(mem, 20)
	require.Len(t, mem, 20)
	require.Equal(t, 1, c.Reallocs())

	c.Free(mem)
	require.Equal(t, 1, c.Frees())

	c.Free(nil)
	require.Equal(t, 1, c.Frees())
}

func TestCountingAllocatorWrapsPool(t *testing.T) {
	p := NewPool()
	c := NewCountingAllocator(p)

	c.Alloc(8)
	c.Alloc(16)
	require.Equal(t, 2, c.Allocs())
	require.Equal(t, 24, c.Bytes())
	require.Equal(t, 24, p.Len())
}

func TestCountingAllocatorReset(t *testing.T) {
	c := NewCountingAllocator(nil)
	c.Alloc(4)
	c.Free([]byte{1})

	c.Reset()
	require.Zero(t, c.Allocs())
	require.Zero(t, c.Frees())
	require.Zero(t, c.Reallocs())
	require.Zero(t, c.Bytes())
}

func TestCountingAllocatorAsCapability(t *testing.T) {
	// The counter is itself an Allocator, so it can sit anywhere a
	// container accepts one.
	var a Allocator = NewCountingAllocator(NewPool())
	mem := Alloc(a, 32)
	require.Len(t, mem, 32)
}

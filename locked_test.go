// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockedNilStaysNil(t *testing.T) {
	require.Nil(t, Locked(nil))
}

func TestLockedForwards(t *testing.T) {
	p := NewPool()
	a := Locked(p)

	mem := a.Alloc(16)
	require.Len(t, mem, 16)
	require.Equal(t, 16, p.Len())

	a.Free(mem)
	require.Equal(t, 16, p.Len())

	require.Panics(t, func() { a.Realloc(mem, 32) })
}

func TestLockedConcurrentAlloc(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 200

	p := NewPool(WithMinBlockSize(256))
	a := Locked(p)

	regions := make([][][]byte, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				mem := a.Alloc(24)
				for j := range mem {
					mem[j] = byte(g + 1)
				}
				regions[g] = append(regions[g], mem)
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, goroutines*perGoroutine*24, p.Len())

	// No two goroutines were handed overlapping regions.
	for g, list := range regions {
		for _, mem := range list {
			for _, b := range mem {
				require.Equal(t, byte(g+1), b)
			}
		}
	}
}

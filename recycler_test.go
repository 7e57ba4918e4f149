// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecyclerAcquireFresh(t *testing.T) {
	r := NewRecycler()

	l := r.Acquire(1)
	require.NotNil(t, l)
	require.NotNil(t, l.Pool)
	require.Equal(t, uint64(1), l.Key)
	require.Equal(t, DefaultMinBlockSize, l.Pool.Stats().MinBlockSize)
}

func TestRecyclerReuse(t *testing.T) {
	r := NewRecycler()

	l := r.Acquire(1)
	l.Pool.Alloc(100)
	r.Release(l)

	// The strong reference above keeps the weak pointer alive, so the
	// next acquire hands back the same lease, emptied.
	l2 := r.Acquire(2)
	require.Same(t, l, l2)
	require.Equal(t, uint64(2), l2.Key)
	require.Zero(t, l2.Pool.Len())
}

func TestRecyclerSizesFromHistory(t *testing.T) {
	r := NewRecycler()

	l := r.Acquire(7)
	l.Pool.Alloc(100_000)
	r.Release(l)

	// A fresh pool for the same key is sized from the recorded usage.
	require.Equal(t, 100_000, r.blockSizeFor(7))

	// Small usage never shrinks below the default.
	l = r.Acquire(9)
	l.Pool.Alloc(8)
	r.Release(l)
	require.Equal(t, DefaultMinBlockSize, r.blockSizeFor(9))
}

func TestRecyclerUsageWindowRolls(t *testing.T) {
	r := NewRecycler()

	var leases []*Lease
	for i := 0; i < usageWindow+10; i++ {
		l := r.Acquire(3)
		l.Pool.Alloc(8192)
		r.Release(l)
		leases = append(leases, l)
	}
	require.Equal(t, 8192, r.blockSizeFor(3))
	_ = leases
}

func TestRecyclerConcurrentAcquireRelease(t *testing.T) {
	r := NewRecycler()

	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				l := r.Acquire(uint64(i % 3))
				l.Pool.Alloc(64)
				r.Release(l)
			}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}
}

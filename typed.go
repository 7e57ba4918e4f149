// SPDX-License-Identifier: Apache-2.0

package alloc

import "unsafe"

// TypedPool dedicates a Pool to values of a single type, which is what
// makes indexed access safe: locating the i-th element only works when
// every allocation in the underlying pool has the same size, and the
// typed wrapper is the only way to guarantee that statically.
//
// Elements are pointer-stable until FreeAll, so callers may hold the
// returned pointers across later New calls.
type TypedPool[T any] struct {
	pool Pool
	n    int // elements carved so far
}

// NewTypedPool returns an empty typed pool.
func NewTypedPool[T any](opts ...PoolOption) *TypedPool[T] {
	tp := &TypedPool[T]{pool: Pool{minBlockSize: DefaultMinBlockSize}}
	for _, opt := range opts {
		opt(&tp.pool)
	}
	return tp
}

// New carves a zeroed T from the pool.
func (tp *TypedPool[T]) New() *T {
	var zero T
	mem := tp.pool.Alloc(int(unsafe.Sizeof(zero)))
	tp.n++
	return (*T)(unsafe.Pointer(unsafe.SliceData(mem)))
}

// At returns the i-th element carved by New, in carving order. The second
// result is false when i is out of range.
func (tp *TypedPool[T]) At(i int) (*T, bool) {
	if i < 0 || i >= tp.n {
		return nil, false
	}
	var zero T
	mem := tp.pool.pieceAt(int(unsafe.Sizeof(zero)), i)
	if mem == nil {
		return nil, false
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(mem))), true
}

// Len returns the number of elements carved so far.
func (tp *TypedPool[T]) Len() int { return tp.n }

// Stats returns a snapshot of the underlying pool.
func (tp *TypedPool[T]) Stats() PoolStats { return tp.pool.Stats() }

// FreeAll releases every element at once and resets the pool to empty.
func (tp *TypedPool[T]) FreeAll() {
	tp.pool.FreeAll()
	tp.n = 0
}

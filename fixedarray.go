// SPDX-License-Identifier: Apache-2.0

package alloc

import "unsafe"

// FixedArrayBytes is the capacity of FixedArray's inline region.
const FixedArrayBytes = 1024

// FixedArray is scratch storage for a single short-lived array of T.
// Requests that fit the inline region cost no heap allocation; anything
// larger is served by one heap make. The zero value is ready to use.
//
// A FixedArray must not be copied after Get has been called, and the
// returned slice must not outlive the FixedArray itself.
type FixedArray[T any] struct {
	// inline sits at offset 0 so it inherits the struct's 8-byte
	// alignment, which the unsafe view in Get relies on.
	inline [FixedArrayBytes]byte
	heap   []T
}

// Get returns storage for n elements, choosing between the inline region
// and the heap. The contents are unspecified; callers overwrite before
// reading. Returns nil when n <= 0.
func (f *FixedArray[T]) Get(n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 || uintptr(n) <= FixedArrayBytes/size {
		return unsafe.Slice((*T)(unsafe.Pointer(&f.inline[0])), n)
	}
	if len(f.heap) < n {
		f.heap = make([]T, n)
	}
	return f.heap[:n]
}

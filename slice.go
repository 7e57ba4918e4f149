// SPDX-License-Identifier: Apache-2.0

package alloc

import "unsafe"

// Below this capacity, slices grow by doubling; beyond it, by a quarter.
const growThreshold = 256

// MakeSlice creates a []T with the given length and capacity, drawing the
// backing memory from a. A nil or exhausted allocator falls back to Go's
// built-in make.
func MakeSlice[T any](a Allocator, length, capacity int) []T {
	if a != nil {
		var zero T
		if mem := a.Alloc(int(unsafe.Sizeof(zero)) * capacity); mem != nil {
			s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), capacity)
			return s[:length]
		}
	}
	return make([]T, length, capacity)
}

// Append appends elems to s, drawing any backing memory the growth needs
// from a. With a nil allocator it is plain append.
//
// Note that a Pool never reclaims the slice's previous backing region, so
// repeated growth through a pool trades memory for allocation speed.
func Append[T any](a Allocator, s []T, elems ...T) []T {
	if a == nil {
		return append(s, elems...)
	}
	s = grow(a, s, len(elems))
	return append(s, elems...)
}

func grow[T any](a Allocator, s []T, more int) []T {
	need := len(s) + more
	newCap := cap(s)
	if newCap == 0 {
		newCap = more
	}
	for need > newCap {
		if newCap < growThreshold {
			newCap *= 2
		} else {
			newCap += newCap / 4
		}
	}
	if newCap == cap(s) {
		return s
	}
	s2 := MakeSlice[T](a, len(s), newCap)
	copy(s2, s)
	return s2
}

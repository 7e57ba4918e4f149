// SPDX-License-Identifier: Apache-2.0

package alloc

import "sync"

type lockedAllocator struct {
	mu sync.Mutex
	a  Allocator
}

// Locked wraps a in a mutex so a single allocator, typically a Pool, can
// be shared across goroutines. Pointer stability and all other guarantees
// of the wrapped allocator carry over. A nil a stays nil: the heap
// fallback needs no locking.
func Locked(a Allocator) Allocator {
	if a == nil {
		return nil
	}
	return &lockedAllocator{a: a}
}

func (l *lockedAllocator) Alloc(size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

func (l *lockedAllocator) Realloc(mem []byte, size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Realloc(mem, size)
}

func (l *lockedAllocator) Free(mem []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Free(mem)
}

package alloc

import (
	"sync"
	"weak"
)

// Usage history is averaged over a rolling window of this many releases.
const usageWindow = 50

// Recycler hands out reusable Pool instances for callers that create one
// pool per unit of work, such as a request or a parse. Released pools are
// held behind weak pointers, so the garbage collector is free to reclaim
// idle ones and the cache sizes itself to actual memory pressure. The
// recycler also records how many bytes each use case consumed and sizes
// fresh pools from that history, so most units of work end up with a
// single block.
type Recycler struct {
	mu    sync.Mutex
	idle  []weak.Pointer[Lease]
	sizes map[uint64]*usageStats
}

// usageStats tracks carved bytes over the last releases for one key.
type usageStats struct {
	count      int
	totalBytes int
}

// Lease pairs a Pool with the use-case key it was acquired under.
type Lease struct {
	Pool *Pool
	Key  uint64
}

// NewRecycler returns an empty recycler.
func NewRecycler() *Recycler {
	return &Recycler{sizes: make(map[uint64]*usageStats)}
}

// Acquire returns an idle pool, or a fresh one sized from the usage
// history recorded for key. The caller owns the lease until Release.
func (r *Recycler) Acquire(key uint64) *Lease {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.idle) > 0 {
		last := len(r.idle) - 1
		wp := r.idle[last]
		r.idle = r.idle[:last]
		if l := wp.Value(); l != nil {
			l.Key = key
			return l
		}
		// Collected by the GC; try the next one.
	}

	return &Lease{
		Pool: NewPool(WithMinBlockSize(r.blockSizeFor(key))),
		Key:  key,
	}
}

// Release records the lease's usage, frees the pool's blocks and parks
// the lease behind a weak pointer for reuse. The caller must not touch
// the pool, or any region it returned, after Release.
func (r *Recycler) Release(l *Lease) {
	used := l.Pool.Len()
	l.Pool.FreeAll()

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sizes[l.Key]
	if !ok {
		s = &usageStats{}
		r.sizes[l.Key] = s
	}
	if s.count == usageWindow {
		s.totalBytes /= usageWindow
		s.count = 1
	}
	s.count++
	s.totalBytes += used

	l.Key = 0
	r.idle = append(r.idle, weak.Make(l))
}

// blockSizeFor returns the block size for a fresh pool serving key: the
// average of the recorded usage, never below the default.
func (r *Recycler) blockSizeFor(key uint64) int {
	if s, ok := r.sizes[key]; ok && s.count > 0 {
		if avg := s.totalBytes / s.count; avg > DefaultMinBlockSize {
			return avg
		}
	}
	return DefaultMinBlockSize
}

// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// DefaultMinBlockSize is the block size a Pool uses unless a larger
// allocation forces a bigger block. Chosen so that typical workloads get
// by with one or two blocks.
const DefaultMinBlockSize = 4096

// Returned regions and block capacities are kept at this alignment.
const blockAlign = 8

// Pool is an arena allocator: it carves allocations off the front of a
// growable chain of blocks and releases them all at once. Free is a
// deliberate no-op and Realloc is unsupported, which is the defining
// trade-off of an arena. Every region a Pool ever returned stays valid,
// at a stable address, until FreeAll.
//
// A Pool is not safe for concurrent use; share one across goroutines via
// Locked, or give each goroutine its own.
type Pool struct {
	minBlockSize int
	blocks       []*poolBlock // owning chain; allocations carve from the last entry
}

type poolBlock struct {
	buf  []byte // 8-aligned base; len(buf) is the block capacity
	used int    // bytes carved off the front, always a multiple of 8
}

func (b *poolBlock) remaining() int { return len(b.buf) - b.used }

// PoolOption configures a Pool at construction.
type PoolOption func(*Pool)

// WithMinBlockSize sets the minimum size of each block the pool allocates.
func WithMinBlockSize(n int) PoolOption {
	return func(p *Pool) {
		p.minBlockSize = n
	}
}

// NewPool returns an empty pool. No memory is allocated until the first
// Alloc call.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{minBlockSize: DefaultMinBlockSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetMinBlockSize changes the minimum block size. It is legal only before
// the first allocation; calling it on a pool that already holds blocks is
// a contract violation and panics.
func (p *Pool) SetMinBlockSize(n int) {
	if len(p.blocks) > 0 {
		panic("alloc: SetMinBlockSize after first allocation")
	}
	p.minBlockSize = n
}

func roundUp8(n int) int { return (n + 7) &^ 7 }

// grow appends a fresh block large enough for min bytes, which must
// already be rounded, and makes it current.
func (p *Pool) grow(min int) *poolBlock {
	size := roundUp8(p.minBlockSize)
	if min > size {
		size = min
	}
	// Over-allocate by a word so the base can be pushed up to an 8-byte
	// boundary; the runtime's small-object allocator does not guarantee
	// one for plain byte slices.
	raw := make([]byte, size+blockAlign-1)
	pad := int(-uintptr(unsafe.Pointer(unsafe.SliceData(raw))) & (blockAlign - 1))
	b := &poolBlock{buf: raw[pad : pad+size : pad+size]}
	p.blocks = append(p.blocks, b)
	return b
}

// Alloc carves size bytes from the current block, appending a new block
// of max(minBlockSize, size) when the current one cannot fit the request.
// The returned region is 8-byte aligned, contiguous within a single
// block, zeroed, and valid until FreeAll.
func (p *Pool) Alloc(size int) []byte {
	if size < 0 {
		panic("alloc: negative allocation size")
	}
	rounded := roundUp8(size)
	var b *poolBlock
	if n := len(p.blocks); n > 0 {
		b = p.blocks[n-1]
	}
	if b == nil || b.remaining() < rounded {
		b = p.grow(rounded)
	}
	off := b.used
	b.used += rounded
	return b.buf[off : off+size : off+size]
}

// Realloc is unsupported: the pool does not record each allocation's
// original size, so it cannot resize one without risking the regions
// carved after it. Calling it is a programming error and panics.
func (p *Pool) Realloc(mem []byte, size int) []byte {
	panic("alloc: Pool does not support Realloc")
}

// Free is a no-op. Individual regions cannot be returned to a pool; call
// FreeAll to release everything at once.
func (p *Pool) Free(mem []byte) {}

// FreeAll drops every block and restores the empty state. It is safe to
// call repeatedly, and the pool remains usable afterwards: the next Alloc
// behaves exactly as on a freshly constructed pool. Every region the pool
// ever returned is invalid once FreeAll is called.
func (p *Pool) FreeAll() {
	p.blocks = nil
}

// pieceAt locates the n-th carved region assuming every allocation in
// this pool was made with the same size. Mixed-size pools yield garbage;
// only TypedPool can uphold the uniformity guarantee, so the locator is
// not part of the public Pool surface. Returns nil when fewer than n+1
// regions fit in the used space.
func (p *Pool) pieceAt(size, n int) []byte {
	rounded := roundUp8(size)
	if rounded == 0 || n < 0 {
		return nil
	}
	for _, b := range p.blocks {
		pieces := b.used / rounded
		if n < pieces {
			off := n * rounded
			return b.buf[off : off+size : off+size]
		}
		n -= pieces
	}
	return nil
}

// Len returns the total number of bytes carved so far, including the
// padding added by rounding each request up to a multiple of 8.
func (p *Pool) Len() int {
	total := 0
	for _, b := range p.blocks {
		total += b.used
	}
	return total
}

// Cap returns the total capacity of all blocks in the chain.
func (p *Pool) Cap() int {
	total := 0
	for _, b := range p.blocks {
		total += len(b.buf)
	}
	return total
}

// NumBlocks returns the number of blocks in the chain.
func (p *Pool) NumBlocks() int { return len(p.blocks) }

// PoolStats is a point-in-time snapshot of a pool's memory accounting.
type PoolStats struct {
	BytesUsed    int // carved bytes, rounding included
	Capacity     int // total block capacity
	NumBlocks    int
	MinBlockSize int
}

// Stats returns a snapshot of the pool's current state.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		BytesUsed:    p.Len(),
		Capacity:     p.Cap(),
		NumBlocks:    p.NumBlocks(),
		MinBlockSize: p.minBlockSize,
	}
}

func (s PoolStats) String() string {
	return fmt.Sprintf("%s used of %s in %d blocks (min block %s)",
		humanize.IBytes(uint64(s.BytesUsed)),
		humanize.IBytes(uint64(s.Capacity)),
		s.NumBlocks,
		humanize.IBytes(uint64(s.MinBlockSize)))
}

// Package arena provides bump-allocated byte storage for solver row lists.
//
// Rows never outlive a solver invocation, so the solver allocates every row
// buffer from an Arena and releases the whole region at once instead of
// leaving millions of small slices to the garbage collector. Chunks are
// anonymous memory mappings; Reset returns the pages to the OS (where the
// platform supports it) while keeping the address space reserved, which lets
// the optimised solver reuse the truncated list's footprint for recreation.
package arena

import (
	mmap "github.com/edsrzf/mmap-go"
)

// minChunkSize bounds mapping churn for small size hints.
const minChunkSize = 1 << 16

type chunk struct {
	m      mmap.MMap
	buf    []byte
	off    int
	mapped bool
}

// Arena is a growable bump allocator. It is not safe for concurrent use;
// each solver invocation owns its own Arena.
type Arena struct {
	chunks    []chunk
	cur       int
	chunkSize int
}

// New returns an arena that grows in chunks of roughly sizeHint bytes.
// No memory is mapped until the first Alloc.
func New(sizeHint int) *Arena {
	if sizeHint < minChunkSize {
		sizeHint = minChunkSize
	}
	return &Arena{chunkSize: sizeHint}
}

// Alloc returns a slice of exactly n bytes. The contents are unspecified;
// callers are expected to overwrite every byte. The slice is valid until
// Reset or Free.
func (a *Arena) Alloc(n int) []byte {
	for a.cur < len(a.chunks) {
		c := &a.chunks[a.cur]
		if c.off+n <= len(c.buf) {
			b := c.buf[c.off : c.off+n : c.off+n]
			c.off += n
			return b
		}
		a.cur++
	}
	a.grow(n)
	c := &a.chunks[len(a.chunks)-1]
	b := c.buf[:n:n]
	c.off = n
	return b
}

func (a *Arena) grow(n int) {
	size := a.chunkSize
	if n > size {
		size = n
	}
	c := chunk{}
	if m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0); err == nil {
		c.m = m
		c.buf = m
		c.mapped = true
	} else {
		// Mapping can fail under address-space pressure or in restricted
		// environments; the heap still satisfies the allocation contract.
		c.buf = make([]byte, size)
	}
	a.chunks = append(a.chunks, c)
	a.cur = len(a.chunks) - 1
}

// Reset invalidates all outstanding allocations and makes the arena's
// chunks available for reuse. Mapped chunks are hinted back to the OS so a
// subsequent phase can refill the same address space.
func (a *Arena) Reset() {
	for i := range a.chunks {
		c := &a.chunks[i]
		if c.mapped && c.off > 0 {
			releasePages(c.buf)
		}
		c.off = 0
	}
	a.cur = 0
}

// Free unmaps all chunks. The arena may be reused afterwards; it will map
// fresh chunks on demand.
func (a *Arena) Free() {
	for i := range a.chunks {
		c := &a.chunks[i]
		if c.mapped {
			// Unmap failures leave nothing actionable for the caller.
			_ = c.m.Unmap()
		}
	}
	a.chunks = nil
	a.cur = 0
}

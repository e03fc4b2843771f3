// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package memory

import (
	"sync"
)

type arenaPage struct {
	buf    []byte
	pooled bool
	used   int
}

// Arena is a scoped, append-only allocator drawing pages from a PagePool.
// Allocated chunks never move, and every chunk stays addressable through
// its offset until Close. Close returns all pooled pages, so dropping an
// arena releases its memory on every exit path.
//
// Alloc and Resolve may be called from different goroutines; an exchange
// partition writes through one arena while its reader resolves stored
// rows from it.
type Arena struct {
	pool *PagePool

	mu        sync.Mutex
	pages     []arenaPage
	allocated Size
	closed    bool
}

// NewArena creates an arena backed by pool. A nil pool means the global
// page pool.
func NewArena(pool *PagePool) *Arena {
	if pool == nil {
		pool = Global()
	}
	return &Arena{pool: pool}
}

// Alloc reserves n contiguous bytes and returns the chunk together with
// the offset that resolves back to it. Allocations larger than the pool's
// page size get a dedicated, unpooled chunk.
func (arena *Arena) Alloc(n int) ([]byte, int64, error) {
	if n < 0 {
		panic("memory: negative allocation")
	}
	if n == 0 {
		return nil, 0, nil
	}

	arena.mu.Lock()
	defer arena.mu.Unlock()

	if arena.closed {
		return nil, 0, Error.New("allocation from closed arena")
	}

	if n > arena.pool.PageSize().Int() {
		arena.pages = append(arena.pages, arenaPage{buf: make([]byte, n), used: n})
		arena.allocated += Size(n)
		return arena.pages[len(arena.pages)-1].buf, int64(len(arena.pages)-1) << 32, nil
	}

	if len(arena.pages) == 0 || arena.pages[len(arena.pages)-1].used+n > len(arena.pages[len(arena.pages)-1].buf) {
		page, err := arena.pool.Acquire()
		if err != nil {
			return nil, 0, err
		}
		arena.pages = append(arena.pages, arenaPage{buf: page, pooled: true})
	}

	last := &arena.pages[len(arena.pages)-1]
	offset := int64(len(arena.pages)-1)<<32 | int64(last.used)
	chunk := last.buf[last.used : last.used+n : last.used+n]
	last.used += n
	arena.allocated += Size(n)
	return chunk, offset, nil
}

// Resolve returns the n bytes previously allocated at offset.
func (arena *Arena) Resolve(offset int64, n int) []byte {
	if n == 0 {
		return nil
	}

	arena.mu.Lock()
	defer arena.mu.Unlock()

	page := arena.pages[offset>>32]
	pos := int(offset & 0xffffffff)
	return page.buf[pos : pos+n : pos+n]
}

// Allocated returns the total bytes handed out by Alloc.
func (arena *Arena) Allocated() Size {
	arena.mu.Lock()
	defer arena.mu.Unlock()
	return arena.allocated
}

// Close releases every pooled page back to the pool. Idempotent.
func (arena *Arena) Close() error {
	arena.mu.Lock()
	defer arena.mu.Unlock()

	if arena.closed {
		return nil
	}
	arena.closed = true

	for _, page := range arena.pages {
		if page.pooled {
			arena.pool.Release(page.buf)
		}
	}
	arena.pages = nil
	return nil
}

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package memory

import (
	"sync"

	"github.com/zeebo/errs"
	"go.uber.org/atomic"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
)

var mon = monkit.Package()

// Error is the error class for paged memory failures.
var Error = errs.Class("memory")

// DefaultPageSize is the page size used by pools unless configured
// otherwise. Exchange partitions fill pages sequentially, so a large page
// keeps per-row overhead negligible.
const DefaultPageSize = 2 * MB

// PagePool hands out fixed-size byte pages and recycles released ones.
//
// A pool with a non-zero budget refuses to hand out more than budget pages
// at a time; the failure surfaces to the query control plane as a fatal
// allocation error. The zero budget means unbounded.
type PagePool struct {
	pageSize    Size
	budget      int64
	outstanding atomic.Int64
	pages       sync.Pool
}

// NewPagePool creates a pool handing out pages of pageSize bytes, keeping
// at most budget pages outstanding (0 = unlimited).
func NewPagePool(pageSize Size, budget int64) *PagePool {
	pool := &PagePool{
		pageSize: pageSize,
		budget:   budget,
	}
	pool.pages.New = func() interface{} {
		return make([]byte, pageSize.Int())
	}
	return pool
}

var global = NewPagePool(DefaultPageSize, 0)

// Global returns the process wide page pool, used by partitions that were
// not handed dedicated resources.
func Global() *PagePool { return global }

// PageSize returns the size of pages this pool hands out.
func (pool *PagePool) PageSize() Size { return pool.pageSize }

// Outstanding returns the number of pages currently held by callers.
func (pool *PagePool) Outstanding() int64 { return pool.outstanding.Load() }

// Acquire returns a page of PageSize bytes. It fails only when the pool's
// budget is exhausted.
func (pool *PagePool) Acquire() ([]byte, error) {
	if held := pool.outstanding.Inc(); pool.budget > 0 && held > pool.budget {
		pool.outstanding.Dec()
		mon.Counter("page_acquire_failures").Inc(1)
		return nil, Error.New("page budget exhausted: %d pages of %v outstanding", pool.budget, pool.pageSize)
	}
	mon.Counter("pages_outstanding").Inc(1)
	return pool.pages.Get().([]byte), nil
}

// Release returns a page previously handed out by Acquire.
func (pool *PagePool) Release(page []byte) {
	pool.outstanding.Dec()
	mon.Counter("pages_outstanding").Inc(-1)
	pool.pages.Put(page) //nolint: staticcheck
}

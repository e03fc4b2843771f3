// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"sync"

	"github.com/zeebo/errs"
	"go.uber.org/atomic"

	"tsurugi.io/jogasaki/internal/memory"
	"tsurugi.io/jogasaki/pkg/data"
	"tsurugi.io/jogasaki/pkg/record"
)

// InputPartition is one parallel lane of a forward exchange, shared by the
// sink and the source assigned to it. It owns the FIFO record store, the
// two arenas backing it, and the active flag the producer side flips once
// it is done.
//
// The store and its arenas come to life on the first Push or TryPop, so
// the partitions a plan allocates but never routes rows through stay
// essentially free.
type InputPartition struct {
	res       *memory.Arena
	varlenRes *memory.Arena
	info      *Info
	active    *atomic.Bool

	once        sync.Once
	initialized atomic.Bool
	records     *data.FIFOStore
}

// NewInputPartition creates a partition for the given exchange
// configuration. Either arena may be nil, in which case the partition
// creates one from the global page pool when the store initializes.
func NewInputPartition(res, varlenRes *memory.Arena, info *Info) *InputPartition {
	return &InputPartition{
		res:       res,
		varlenRes: varlenRes,
		info:      info,
		active:    atomic.NewBool(true),
	}
}

// Push appends a deep copy of rec to the partition's store.
func (p *InputPartition) Push(rec record.Ref) error {
	p.initLazy()
	return p.records.Push(rec)
}

// TryPop removes the oldest stored row into out, reporting false when
// nothing is buffered.
func (p *InputPartition) TryPop(out *record.Ref) bool {
	p.initLazy()
	return p.records.TryPop(out)
}

// Flush finalizes batched state in exchange flavors that batch; forward
// partitions publish rows on push, so there is nothing to do.
func (p *InputPartition) Flush() {}

// Empty reports whether no rows are buffered.
func (p *InputPartition) Empty() bool {
	if !p.initialized.Load() {
		return true
	}
	return p.records.Empty()
}

// Count returns the number of buffered rows.
func (p *InputPartition) Count() int {
	if !p.initialized.Load() {
		return 0
	}
	return p.records.Count()
}

// Active returns the flag that is true while the producing sink may still
// emit. It transitions to false exactly once and never back.
func (p *InputPartition) Active() *atomic.Bool { return p.active }

// Close releases the partition's arenas back to their pool. Safe on a
// partition that never initialized.
func (p *InputPartition) Close() error {
	var group errs.Group
	if p.res != nil {
		group.Add(p.res.Close())
	}
	if p.varlenRes != nil {
		group.Add(p.varlenRes.Close())
	}
	return group.Err()
}

func (p *InputPartition) initLazy() {
	p.once.Do(func() {
		if p.res == nil {
			p.res = memory.NewArena(nil)
		}
		if p.varlenRes == nil {
			p.varlenRes = memory.NewArena(nil)
		}
		p.records = data.NewFIFOStore(p.res, p.varlenRes, p.info.RecordMeta())
		p.initialized.Store(true)
	})
}

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"github.com/zeebo/errs"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/exchange"
)

// Flow owns the partition fabric of one forward exchange execution. It is
// created by the step on activation and bound to that request context.
//
// Sinks and sources are held as slices of pointers: growing the slices
// across SetupPartitions calls never moves the sinks and sources
// themselves, so references handed out earlier stay valid.
type Flow struct {
	info  *Info
	rctx  *exec.RequestContext
	owner *Step

	tasks      []exec.Task
	sinks      []*Sink
	sources    []*Source
	writeCount *atomic.Uint64
}

// NewFlow creates a flow for one activation of owner.
func NewFlow(info *Info, rctx *exec.RequestContext, owner *Step) *Flow {
	return &Flow{
		info:  info,
		rctx:  rctx,
		owner: owner,
	}
}

// SetupPartitions implements exchange.Flow: it appends n partitions, each
// fronted by a fresh sink/source pair sharing the partition and its active
// flag, and returns live views over all sinks and sources so far.
func (f *Flow) SetupPartitions(n int) (exchange.SinkList, exchange.SourceList) {
	if n < 0 {
		panic("forward: negative partition count")
	}

	// all writers of the flow share one counter so the limit is global
	if f.writeCount == nil {
		if _, ok := f.info.Limit(); ok {
			f.writeCount = atomic.NewUint64(0)
		}
	}

	for i := 0; i < n; i++ {
		partition := NewInputPartition(nil, nil, f.info)
		f.sinks = append(f.sinks, NewSink(f.info, f.rctx, f.writeCount, partition))
		f.sources = append(f.sources, NewSource(f.info, f.rctx, partition, partition.Active()))
	}

	mon.Counter("forward_partitions").Inc(int64(n))
	f.rctx.Logger().Debug("forward exchange partitions set up",
		zap.Int("added", n),
		zap.Int("sinks", len(f.sinks)),
		zap.Int("sources", len(f.sources)))

	return sinkList{f}, sourceList{f}
}

// CreateTasks implements exchange.Flow: it produces the flow's single
// exchange task and returns the task list.
func (f *Flow) CreateTasks() []exec.Task {
	f.tasks = append(f.tasks, exchange.NewTask(f.rctx, f.owner))
	return f.tasks
}

// Sinks implements exchange.Flow.
func (f *Flow) Sinks() exchange.SinkList { return sinkList{f} }

// Sources implements exchange.Flow.
func (f *Flow) Sources() exchange.SourceList { return sourceList{f} }

// Kind implements exchange.Flow.
func (f *Flow) Kind() exec.StepKind { return exec.Forward }

// Context implements exchange.Flow.
func (f *Flow) Context() *exec.RequestContext { return f.rctx }

// Close implements exchange.Flow: every partition's arenas go back to the
// page pool.
func (f *Flow) Close() error {
	var group errs.Group
	for _, sink := range f.sinks {
		group.Add(sink.Partition().Close())
	}
	return group.Err()
}

// sinkList and sourceList project the concrete containers up to the
// abstract capability set. They are windows, not copies: partitions added
// later show up in views taken earlier.

type sinkList struct{ flow *Flow }

func (l sinkList) Len() int               { return len(l.flow.sinks) }
func (l sinkList) At(i int) exchange.Sink { return l.flow.sinks[i] }

type sourceList struct{ flow *Flow }

func (l sourceList) Len() int                 { return len(l.flow.sources) }
func (l sourceList) At(i int) exchange.Source { return l.flow.sources[i] }

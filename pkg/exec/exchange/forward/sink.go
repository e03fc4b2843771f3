// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/io"
)

// Sink coordinates the write side of one partition: it hands out the
// partition's single writer and deactivates the partition when the writer
// comes back. A sink is owned by one producer task; its methods are not
// for concurrent use.
type Sink struct {
	info       *Info
	rctx       *exec.RequestContext
	writeCount *atomic.Uint64
	partition  *InputPartition
	writer     *Writer
}

// NewSink creates the sink feeding partition. writeCount is the flow-wide
// limit counter, nil when the exchange is unbounded.
func NewSink(info *Info, rctx *exec.RequestContext, writeCount *atomic.Uint64, partition *InputPartition) *Sink {
	return &Sink{
		info:       info,
		rctx:       rctx,
		writeCount: writeCount,
		partition:  partition,
	}
}

// AcquireWriter implements exchange.Sink: it returns the sink's writer,
// creating it on the first call.
func (s *Sink) AcquireWriter() io.RecordWriter {
	if s.writer == nil {
		s.writer = NewWriter(s.info, s, s.writeCount, s.partition)
		s.rctx.Logger().Debug("writer acquired", zap.Bool("active", s.partition.Active().Load()))
	}
	return s.writer
}

// ReleaseWriter destroys the writer and deactivates the partition. Passing
// any writer other than the one handed out by AcquireWriter is a bug and
// panics.
func (s *Sink) ReleaseWriter(w io.RecordWriter) {
	if s.writer == nil || io.RecordWriter(s.writer) != w {
		panic("forward: released writer does not belong to this sink")
	}
	s.writer = nil
	mon.Counter("forward_writers_released").Inc(1)
	s.rctx.Logger().Debug("writer released")

	// with its writer gone the sink can no longer emit
	s.Deactivate()
}

// Deactivate implements exchange.Sink: the partition stops being active.
// Idempotent; the flag never goes back to true.
func (s *Sink) Deactivate() {
	s.partition.Active().Store(false)
}

// Partition returns the partition the sink feeds.
func (s *Sink) Partition() *InputPartition { return s.partition }

// Context returns the request context the sink is bound to.
func (s *Sink) Context() *exec.RequestContext { return s.rctx }

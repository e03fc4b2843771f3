// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"go.uber.org/atomic"

	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/io"
)

// Source coordinates the read side of one partition. It lazily creates
// the partition's single reader and hands it out behind the opaque
// container; repeated acquisitions return the same reader.
//
// The source keeps the producing sink's active flag but neither reads nor
// writes it; the reader reports the partition's own active flag, which is
// the flag the sink deactivates.
type Source struct {
	info       *Info
	rctx       *exec.RequestContext
	partition  *InputPartition
	sinkActive *atomic.Bool
	reader     *Reader
}

// NewSource creates the source draining partition. sinkActive is the
// producing sink's flag.
func NewSource(info *Info, rctx *exec.RequestContext, partition *InputPartition, sinkActive *atomic.Bool) *Source {
	return &Source{
		info:       info,
		rctx:       rctx,
		partition:  partition,
		sinkActive: sinkActive,
	}
}

// AcquireReader implements exchange.Source.
func (s *Source) AcquireReader() io.ReaderContainer {
	if s.reader == nil {
		s.reader = NewReader(s.info, s.partition)
	}
	return io.NewReaderContainer(s.reader)
}

// Partition returns the partition the source drains.
func (s *Source) Partition() *InputPartition { return s.partition }

// Context returns the request context the source is bound to.
func (s *Source) Context() *exec.RequestContext { return s.rctx }

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"tsurugi.io/jogasaki/pkg/record"
)

// Reader pops rows from one partition. It never blocks: a false
// NextRecord with SourceActive still true means "temporarily empty" and
// the consuming task should yield; false with an inactive source means the
// stream is drained.
type Reader struct {
	info      *Info
	partition *InputPartition
	current   record.Ref
}

// NewReader creates the reader for a partition.
func NewReader(info *Info, partition *InputPartition) *Reader {
	return &Reader{info: info, partition: partition}
}

// Available implements io.RecordReader.
func (r *Reader) Available() bool {
	return !r.partition.Empty()
}

// NextRecord implements io.RecordReader.
func (r *Reader) NextRecord() bool {
	return r.partition.TryPop(&r.current)
}

// GetRecord implements io.RecordReader.
func (r *Reader) GetRecord() record.Ref {
	return r.current
}

// Release implements io.RecordReader. The reader lives and dies with its
// source, so there is nothing to release.
func (r *Reader) Release() {}

// SourceActive implements io.RecordReader: it observes the producing
// sink's active flag.
func (r *Reader) SourceActive() bool {
	return r.partition.Active().Load()
}

// Partition returns the partition the reader drains.
func (r *Reader) Partition() *InputPartition { return r.partition }

// Info returns the exchange configuration.
func (r *Reader) Info() *Info { return r.info }

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"go.uber.org/atomic"

	"tsurugi.io/jogasaki/pkg/record"
)

// Writer pushes rows into one partition. When the exchange carries a row
// limit, every writer of the flow increments the shared counter before
// pushing; rows arriving after the counter reaches the limit are dropped
// and still reported as written. That silent drop is how a pushed-down
// LIMIT shows up at this layer: the producer keeps going without branching
// on every row, and whichever writer wins the final increment decides the
// cutoff.
type Writer struct {
	info       *Info
	owner      *Sink
	writeCount *atomic.Uint64
	partition  *InputPartition
}

// NewWriter creates the writer for owner's partition. writeCount is the
// flow-wide counter, nil when the exchange is unbounded.
func NewWriter(info *Info, owner *Sink, writeCount *atomic.Uint64, partition *InputPartition) *Writer {
	return &Writer{
		info:       info,
		owner:      owner,
		writeCount: writeCount,
		partition:  partition,
	}
}

// Write implements io.RecordWriter.
func (w *Writer) Write(rec record.Ref) (bool, error) {
	if w.writeCount != nil {
		if limit, ok := w.info.Limit(); ok {
			count := w.writeCount.Load()
			for {
				if count >= limit {
					mon.Meter("forward_dropped_records").Mark(1)
					return true, nil
				}
				if w.writeCount.CompareAndSwap(count, count+1) {
					break
				}
				count = w.writeCount.Load()
			}
		}
	}
	if err := w.partition.Push(rec); err != nil {
		return true, Error.Wrap(err)
	}
	return true, nil
}

// Flush implements io.RecordWriter.
func (w *Writer) Flush() error {
	w.partition.Flush()
	return nil
}

// Release implements io.RecordWriter: the writer goes back to its sink and
// the partition deactivates.
func (w *Writer) Release() {
	w.owner.ReleaseWriter(w)
}

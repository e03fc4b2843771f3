// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package exchange defines the capability set every exchange flavor
// exposes to the step graph: sinks and sources per partition, the flow
// grouping them for one execution, and the step producing flows.
package exchange

import (
	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/io"
)

// Sink is the write side of one partition. Its lifecycle owns the
// partition's single writer.
type Sink interface {
	// AcquireWriter returns the partition's writer, creating it on first
	// call. One producer task owns a sink; acquisition is not concurrent.
	AcquireWriter() io.RecordWriter

	// Deactivate marks the partition as no longer producing. Idempotent;
	// releasing the writer calls it implicitly.
	Deactivate()
}

// Source is the read side of one partition. Its lifecycle owns the
// partition's single reader.
type Source interface {
	// AcquireReader returns a handle to the partition's reader, created
	// lazily on first call.
	AcquireReader() io.ReaderContainer
}

// SinkList is a live view over a flow's sinks: it reflects partitions
// added after the view was taken.
type SinkList interface {
	Len() int
	At(i int) Sink
}

// SourceList is a live view over a flow's sources.
type SourceList interface {
	Len() int
	At(i int) Source
}

// Flow is the per-execution object grouping all partitions of one
// exchange instance. It is bound to one request context and owned by the
// step that activated it.
type Flow interface {
	// CreateTasks returns the flow's scheduling handles. Exchanges
	// produce exactly one task.
	CreateTasks() []exec.Task

	// SetupPartitions appends n partitions and returns live views over
	// all sinks and sources. Zero is legal; repeated calls append.
	SetupPartitions(n int) (SinkList, SourceList)

	// Sinks returns the live sink view.
	Sinks() SinkList

	// Sources returns the live source view.
	Sources() SourceList

	// Kind returns the exchange flavor tag.
	Kind() exec.StepKind

	// Context returns the request context the flow is bound to.
	Context() *exec.RequestContext

	// Close releases every partition's memory back to the page pool.
	Close() error
}

// Step is a query-DAG exchange node. It outlives any single execution;
// every activation produces a fresh flow.
type Step interface {
	Kind() exec.StepKind
	Activate(rctx *exec.RequestContext) Flow
}

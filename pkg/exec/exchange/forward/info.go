// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package forward implements the pass-through exchange: rows move from
// producers to consumers through partitioned FIFOs without repartitioning,
// sorting or aggregation, with optional global row-limit enforcement.
package forward

import (
	"github.com/zeebo/errs"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"tsurugi.io/jogasaki/pkg/meta"
)

var mon = monkit.Package()

// Error is the error class for forward exchange failures.
var Error = errs.Class("forward")

// Info is the immutable configuration of one forward exchange: the record
// schema and the optional global row limit pushed down from a LIMIT
// operator. It is shared by the step, its flows, and every partition,
// writer and reader they create.
type Info struct {
	meta     *meta.RecordMeta
	limit    uint64
	hasLimit bool
}

// NewInfo creates an unbounded forward exchange configuration.
func NewInfo(m *meta.RecordMeta) *Info {
	return &Info{meta: m}
}

// NewInfoWithLimit creates a configuration transmitting at most limit rows
// across all partitions combined.
func NewInfoWithLimit(m *meta.RecordMeta, limit uint64) *Info {
	return &Info{meta: m, limit: limit, hasLimit: true}
}

// RecordMeta returns the schema of rows flowing through the exchange.
func (i *Info) RecordMeta() *meta.RecordMeta { return i.meta }

// Limit returns the global row limit and whether one is set.
func (i *Info) Limit() (uint64, bool) { return i.limit, i.hasLimit }

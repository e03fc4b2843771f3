// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package io defines the record-level handles operators use to move rows
// in and out of exchanges, independent of the exchange flavor behind them.
package io

import "tsurugi.io/jogasaki/pkg/record"

// RecordWriter is the producer-side handle to an exchange partition.
// Exactly one writer is attached to a partition at a time.
type RecordWriter interface {
	// Write stores one row. The bool is the acceptance slot for writer
	// kinds with backpressure; forward writers always report true,
	// including for rows discarded by a pushed-down limit, so forward
	// consumers must not use it for flow control. A non-nil error is an
	// allocation failure and fatal to the request.
	Write(rec record.Ref) (bool, error)

	// Flush publishes previously written rows in flavors that batch.
	Flush() error

	// Release hands the writer back to its owning sink, which marks the
	// partition as no longer producing. The writer must not be used
	// afterwards.
	Release()
}

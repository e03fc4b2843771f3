// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package io

import "tsurugi.io/jogasaki/pkg/record"

// RecordReader is the consumer-side handle to an exchange partition. None
// of its methods block; a consumer finding no records yields back to the
// scheduler instead.
type RecordReader interface {
	// Available reports whether a row is buffered right now.
	Available() bool

	// NextRecord advances to the next row, reporting false when nothing
	// is buffered. On false the caller consults SourceActive to tell
	// "temporarily empty" from "drained".
	NextRecord() bool

	// GetRecord returns the current row. Defined only after a true
	// NextRecord.
	GetRecord() record.Ref

	// Release is a no-op for readers owned by their source; kept for
	// flavors that hand out detachable readers.
	Release()

	// SourceActive reports whether the producing side may still emit.
	// False together with a false Available means the stream terminated.
	SourceActive() bool
}

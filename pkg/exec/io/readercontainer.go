// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package io

// ReaderContainer is the opaque handle sources give to consumer code. It
// carries the reader behind the RecordReader capability set so consumers
// treat every exchange flavor uniformly.
type ReaderContainer struct {
	reader RecordReader
}

// NewReaderContainer wraps a reader.
func NewReaderContainer(reader RecordReader) ReaderContainer {
	return ReaderContainer{reader: reader}
}

// Reader returns the contained reader.
func (c ReaderContainer) Reader() RecordReader { return c.reader }

// Valid reports whether the container holds a reader.
func (c ReaderContainer) Valid() bool { return c.reader != nil }

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package data provides the record containers backing exchange
// partitions.
package data

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/errs"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"tsurugi.io/jogasaki/internal/memory"
	"tsurugi.io/jogasaki/pkg/meta"
	"tsurugi.io/jogasaki/pkg/record"
)

var mon = monkit.Package()

// Error is the error class for record store failures.
var Error = errs.Class("data")

// FIFOStore is an append-only queue of rows for one exchange partition.
// Push deep-copies the row, varlen payloads included, into the store's
// arenas; TryPop hands back references into those copies, valid until the
// arenas are closed.
//
// Neither operation blocks. One concurrent producer and one concurrent
// consumer are supported, matching the one-writer-one-reader contract of a
// partition; a failed TryPop means "nothing buffered right now", and the
// caller decides between yielding and terminating.
type FIFOStore struct {
	meta      *meta.RecordMeta
	res       *memory.Arena
	varlenRes *memory.Arena

	mu    sync.Mutex
	queue []record.Ref
	head  int
}

// NewFIFOStore creates a store copying fixed regions into res and varlen
// payloads into varlenRes.
func NewFIFOStore(res, varlenRes *memory.Arena, m *meta.RecordMeta) *FIFOStore {
	return &FIFOStore{
		meta:      m,
		res:       res,
		varlenRes: varlenRes,
	}
}

// Push appends a deep copy of rec to the tail of the queue.
func (s *FIFOStore) Push(rec record.Ref) error {
	chunk, _, err := s.res.Alloc(s.meta.RecordSize())
	if err != nil {
		return Error.Wrap(err)
	}
	copy(chunk, rec.Bytes())

	for i := 0; i < s.meta.FieldCount(); i++ {
		if s.meta.TypeAt(i) != meta.Character {
			continue
		}
		fieldOffset := s.meta.OffsetAt(i)
		if rec.IsNull(s.meta, i) {
			// stale source offsets must not leak into the copy
			for b := fieldOffset; b < fieldOffset+s.meta.TypeAt(i).FixedSize(); b++ {
				chunk[b] = 0
			}
			continue
		}
		payload := rec.CharacterBytes(s.meta, i)
		stored, storedOffset, err := s.varlenRes.Alloc(len(payload))
		if err != nil {
			return Error.Wrap(err)
		}
		copy(stored, payload)
		binary.LittleEndian.PutUint64(chunk[fieldOffset:], uint64(storedOffset))
		binary.LittleEndian.PutUint64(chunk[fieldOffset+8:], uint64(len(payload)))
	}

	s.mu.Lock()
	s.queue = append(s.queue, record.NewRef(chunk, s.varlenRes))
	s.mu.Unlock()

	mon.Meter("record_pushes").Mark(1)
	return nil
}

// TryPop removes the head of the queue into out. It returns false when
// nothing is buffered.
func (s *FIFOStore) TryPop(out *record.Ref) bool {
	s.mu.Lock()
	if s.head == len(s.queue) {
		s.mu.Unlock()
		return false
	}
	*out = s.queue[s.head]
	s.queue[s.head] = record.Ref{}
	s.head++
	if s.head == len(s.queue) {
		s.queue = s.queue[:0]
		s.head = 0
	}
	s.mu.Unlock()

	mon.Meter("record_pops").Mark(1)
	return true
}

// Count returns the number of buffered rows.
func (s *FIFOStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) - s.head
}

// Empty reports whether no rows are buffered.
func (s *FIFOStore) Empty() bool {
	return s.Count() == 0
}

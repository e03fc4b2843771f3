// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package record provides the opaque row handle passed between relational
// operators and the builder producing such rows.
package record

import (
	"encoding/binary"
	"math"

	"tsurugi.io/jogasaki/internal/memory"
	"tsurugi.io/jogasaki/pkg/meta"
)

// Ref is an opaque handle to one row. The fixed region lives in memory
// owned by whoever built or stored the row; variable length fields resolve
// through the arena the row was written to. A Ref stays valid for as long
// as that backing memory is alive.
//
// All accessors take the RecordMeta describing the row; a Ref carries no
// schema of its own.
type Ref struct {
	data  []byte
	arena *memory.Arena
}

// NewRef creates a handle over a stored fixed region and the arena holding
// its varlen payloads.
func NewRef(data []byte, arena *memory.Arena) Ref {
	return Ref{data: data, arena: arena}
}

// Valid reports whether the handle points at a row.
func (r Ref) Valid() bool { return r.data != nil }

// Bytes returns the raw fixed region.
func (r Ref) Bytes() []byte { return r.data }

// Arena returns the arena resolving the row's varlen fields.
func (r Ref) Arena() *memory.Arena { return r.arena }

// IsNull reports whether field i is null.
func (r Ref) IsNull(m *meta.RecordMeta, i int) bool {
	if !m.NullableAt(i) {
		return false
	}
	bit := m.NullityOffsetAt(i)
	return r.data[bit/8]&(1<<uint(bit%8)) != 0
}

// Int8 returns field i as a signed 8-byte integer.
func (r Ref) Int8(m *meta.RecordMeta, i int) int64 {
	return int64(binary.LittleEndian.Uint64(r.data[m.OffsetAt(i):]))
}

// Float8 returns field i as an 8-byte float.
func (r Ref) Float8(m *meta.RecordMeta, i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(r.data[m.OffsetAt(i):]))
}

// CharacterBytes returns the payload of character field i, resolved from
// the row's arena. The returned slice aliases arena memory.
func (r Ref) CharacterBytes(m *meta.RecordMeta, i int) []byte {
	fieldOffset := m.OffsetAt(i)
	arenaOffset := int64(binary.LittleEndian.Uint64(r.data[fieldOffset:]))
	length := int(binary.LittleEndian.Uint64(r.data[fieldOffset+8:]))
	return r.arena.Resolve(arenaOffset, length)
}

// Character returns character field i as a string.
func (r Ref) Character(m *meta.RecordMeta, i int) string {
	return string(r.CharacterBytes(m, i))
}

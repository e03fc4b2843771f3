// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package record

import (
	"encoding/binary"
	"math"

	"tsurugi.io/jogasaki/internal/memory"
	"tsurugi.io/jogasaki/pkg/meta"
)

// Builder assembles rows one at a time. Finish copies the staged row into
// the builder's arena and returns a Ref to the copy; refs stay valid until
// Close. A Builder is not safe for concurrent use.
type Builder struct {
	meta  *meta.RecordMeta
	arena *memory.Arena
	buf   []byte
}

// NewBuilder creates a builder for rows of the given schema, backed by the
// global page pool.
func NewBuilder(m *meta.RecordMeta) *Builder {
	return NewBuilderWithPool(m, nil)
}

// NewBuilderWithPool creates a builder whose arena draws from pool.
func NewBuilderWithPool(m *meta.RecordMeta, pool *memory.PagePool) *Builder {
	return &Builder{
		meta:  m,
		arena: memory.NewArena(pool),
		buf:   make([]byte, m.RecordSize()),
	}
}

// SetInt8 stages an integer value for field i.
func (b *Builder) SetInt8(i int, v int64) *Builder {
	binary.LittleEndian.PutUint64(b.buf[b.meta.OffsetAt(i):], uint64(v))
	return b
}

// SetFloat8 stages a float value for field i.
func (b *Builder) SetFloat8(i int, v float64) *Builder {
	binary.LittleEndian.PutUint64(b.buf[b.meta.OffsetAt(i):], math.Float64bits(v))
	return b
}

// SetCharacter stages character data for field i. The payload is copied
// into the builder's arena.
func (b *Builder) SetCharacter(i int, v string) error {
	chunk, offset, err := b.arena.Alloc(len(v))
	if err != nil {
		return err
	}
	copy(chunk, v)
	fieldOffset := b.meta.OffsetAt(i)
	binary.LittleEndian.PutUint64(b.buf[fieldOffset:], uint64(offset))
	binary.LittleEndian.PutUint64(b.buf[fieldOffset+8:], uint64(len(v)))
	return nil
}

// SetNull stages null for field i. The field must be nullable.
func (b *Builder) SetNull(i int) *Builder {
	bit := b.meta.NullityOffsetAt(i)
	if bit < 0 {
		panic("record: null staged for non-nullable field")
	}
	b.buf[bit/8] |= 1 << uint(bit%8)
	return b
}

// Finish copies the staged row into the arena and resets the stage.
func (b *Builder) Finish() (Ref, error) {
	chunk, _, err := b.arena.Alloc(len(b.buf))
	if err != nil {
		return Ref{}, err
	}
	copy(chunk, b.buf)
	for i := range b.buf {
		b.buf[i] = 0
	}
	return NewRef(chunk, b.arena), nil
}

// Close releases the builder's arena. Rows built by this builder become
// invalid.
func (b *Builder) Close() error {
	return b.arena.Close()
}

// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package meta

// RecordMeta is the immutable layout description shared by every component
// touching the same record stream. Records start with a nullity bitmap,
// one bit per nullable field, followed by the 8-byte aligned fixed regions
// of each field in declaration order.
type RecordMeta struct {
	types          []FieldType
	nullable       []bool
	offsets        []int
	nullityOffsets []int
	recordSize     int
}

// NewRecordMeta computes the layout for the given field types and
// nullability. The two slices must have equal length.
func NewRecordMeta(types []FieldType, nullable []bool) *RecordMeta {
	if len(types) != len(nullable) {
		panic("meta: types and nullability length mismatch")
	}

	m := &RecordMeta{
		types:          append([]FieldType(nil), types...),
		nullable:       append([]bool(nil), nullable...),
		offsets:        make([]int, len(types)),
		nullityOffsets: make([]int, len(types)),
	}

	bit := 0
	for i, isNullable := range m.nullable {
		m.nullityOffsets[i] = -1
		if isNullable {
			m.nullityOffsets[i] = bit
			bit++
		}
	}

	// value region starts 8-byte aligned after the bitmap
	offset := ((bit+7)/8 + 7) &^ 7
	for i, typ := range m.types {
		m.offsets[i] = offset
		offset += typ.FixedSize()
	}
	m.recordSize = offset
	return m
}

// FieldCount returns the number of fields per record.
func (m *RecordMeta) FieldCount() int { return len(m.types) }

// TypeAt returns the type of field i.
func (m *RecordMeta) TypeAt(i int) FieldType { return m.types[i] }

// NullableAt reports whether field i admits null.
func (m *RecordMeta) NullableAt(i int) bool { return m.nullable[i] }

// OffsetAt returns the byte offset of field i's fixed region.
func (m *RecordMeta) OffsetAt(i int) int { return m.offsets[i] }

// NullityOffsetAt returns the bit position of field i's nullity bit, or -1
// for non-nullable fields.
func (m *RecordMeta) NullityOffsetAt(i int) int { return m.nullityOffsets[i] }

// RecordSize returns the total bytes of one record's fixed region.
func (m *RecordMeta) RecordSize() int { return m.recordSize }

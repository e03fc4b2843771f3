// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package meta_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsurugi.io/jogasaki/pkg/meta"
)

func TestRecordMeta_Layout(t *testing.T) {
	var tests = []struct {
		name           string
		types          []meta.FieldType
		nullable       []bool
		offsets        []int
		nullityOffsets []int
		recordSize     int
	}{
		{
			name:           "no nullable fields",
			types:          []meta.FieldType{meta.Int8, meta.Float8},
			nullable:       []bool{false, false},
			offsets:        []int{0, 8},
			nullityOffsets: []int{-1, -1},
			recordSize:     16,
		},
		{
			name:           "all nullable",
			types:          []meta.FieldType{meta.Int8, meta.Character, meta.Float8},
			nullable:       []bool{true, true, true},
			offsets:        []int{8, 16, 32},
			nullityOffsets: []int{0, 1, 2},
			recordSize:     40,
		},
		{
			name:           "mixed nullability skips bits for non-nullable",
			types:          []meta.FieldType{meta.Int8, meta.Int8, meta.Character},
			nullable:       []bool{false, true, true},
			offsets:        []int{8, 16, 24},
			nullityOffsets: []int{-1, 0, 1},
			recordSize:     40,
		},
		{
			name:           "nine nullity bits need two bitmap bytes",
			types:          []meta.FieldType{meta.Int8, meta.Int8, meta.Int8, meta.Int8, meta.Int8, meta.Int8, meta.Int8, meta.Int8, meta.Int8},
			nullable:       []bool{true, true, true, true, true, true, true, true, true},
			offsets:        []int{8, 16, 24, 32, 40, 48, 56, 64, 72},
			nullityOffsets: []int{0, 1, 2, 3, 4, 5, 6, 7, 8},
			recordSize:     80,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := meta.NewRecordMeta(test.types, test.nullable)
			require.Equal(t, len(test.types), m.FieldCount())

			offsets := make([]int, m.FieldCount())
			nullityOffsets := make([]int, m.FieldCount())
			for i := 0; i < m.FieldCount(); i++ {
				offsets[i] = m.OffsetAt(i)
				nullityOffsets[i] = m.NullityOffsetAt(i)
				assert.Equal(t, test.types[i], m.TypeAt(i))
				assert.Equal(t, test.nullable[i], m.NullableAt(i))
			}
			assert.Empty(t, cmp.Diff(test.offsets, offsets))
			assert.Empty(t, cmp.Diff(test.nullityOffsets, nullityOffsets))
			assert.Equal(t, test.recordSize, m.RecordSize())
		})
	}
}

func TestRecordMeta_LengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		meta.NewRecordMeta([]meta.FieldType{meta.Int8}, []bool{true, false})
	})
}

func TestVariableOrder(t *testing.T) {
	order := meta.NewVariableOrder(2, 0, 1)
	require.Equal(t, 3, order.Size())
	require.Equal(t, 2, order.IndexAt(0))
	require.Equal(t, 1, order.IndexAt(2))
	require.False(t, order.Empty())

	var empty meta.VariableOrder
	require.True(t, empty.Empty())
	require.Zero(t, empty.Size())
}

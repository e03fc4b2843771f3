// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package meta

// VariableOrder records the column ordering of an exchange input or
// output. The zero value is an empty order.
type VariableOrder struct {
	indices []int
}

// NewVariableOrder creates an order over the given column indices.
func NewVariableOrder(indices ...int) VariableOrder {
	return VariableOrder{indices: append([]int(nil), indices...)}
}

// Size returns the number of ordered columns.
func (o VariableOrder) Size() int { return len(o.indices) }

// IndexAt returns the column index at position pos.
func (o VariableOrder) IndexAt(pos int) int { return o.indices[pos] }

// Empty reports whether no ordering information is present.
func (o VariableOrder) Empty() bool { return len(o.indices) == 0 }

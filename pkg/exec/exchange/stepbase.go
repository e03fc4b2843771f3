// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package exchange

import (
	"tsurugi.io/jogasaki/pkg/meta"
)

// StepBase carries the state every exchange step holds: the input schema,
// the input column ordering, and the data flow object installed by the
// latest activation. Concrete steps embed it.
type StepBase struct {
	inputMeta  *meta.RecordMeta
	inputOrder meta.VariableOrder
	flow       Flow
}

// NewStepBase creates the shared step state.
func NewStepBase(inputMeta *meta.RecordMeta, inputOrder meta.VariableOrder) StepBase {
	return StepBase{inputMeta: inputMeta, inputOrder: inputOrder}
}

// InputMeta returns the schema of rows entering the exchange.
func (s *StepBase) InputMeta() *meta.RecordMeta { return s.inputMeta }

// InputOrder returns the column ordering of the exchange input.
func (s *StepBase) InputOrder() meta.VariableOrder { return s.inputOrder }

// SetDataFlow installs the flow produced by an activation.
func (s *StepBase) SetDataFlow(flow Flow) { s.flow = flow }

// DataFlow returns the flow installed by the latest activation, or nil
// before the first one.
func (s *StepBase) DataFlow() Flow { return s.flow }

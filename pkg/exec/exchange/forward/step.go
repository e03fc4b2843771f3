// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward

import (
	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/exchange"
	"tsurugi.io/jogasaki/pkg/meta"
)

// Step is the query-DAG node of a forward exchange. It holds the exchange
// configuration from planning until query completion; every activation
// builds a flow scoped to that request.
type Step struct {
	exchange.StepBase
	info *Info
}

// NewStep creates a step over an already built configuration.
func NewStep(info *Info, inputOrder meta.VariableOrder) *Step {
	return &Step{
		StepBase: exchange.NewStepBase(info.RecordMeta(), inputOrder),
		info:     info,
	}
}

// NewStepFromMeta creates an unbounded step from the input schema.
func NewStepFromMeta(inputMeta *meta.RecordMeta, inputOrder meta.VariableOrder) *Step {
	return NewStep(NewInfo(inputMeta), inputOrder)
}

// Kind implements exchange.Step.
func (s *Step) Kind() exec.StepKind { return exec.Forward }

// Activate implements exchange.Step: it builds a fresh flow bound to rctx
// and installs it as the step's data flow object.
func (s *Step) Activate(rctx *exec.RequestContext) exchange.Flow {
	flow := NewFlow(s.info, rctx, s)
	s.SetDataFlow(flow)
	return flow
}

// Info returns the exchange configuration.
func (s *Step) Info() *Info { return s.info }

// OutputOrder returns the column ordering downstream steps observe. A
// forward exchange preserves per-partition input order, so it is the
// input order unchanged.
func (s *Step) OutputOrder() meta.VariableOrder { return s.InputOrder() }

// OutputMeta returns the schema downstream steps observe: the input
// schema unchanged.
func (s *Step) OutputMeta() *meta.RecordMeta { return s.InputMeta() }

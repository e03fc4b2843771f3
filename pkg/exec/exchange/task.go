// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package exchange

import (
	"context"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"tsurugi.io/jogasaki/pkg/exec"
)

var mon = monkit.Package()

var nextTaskID atomic.Uint64

// Task is the scheduling handle of an exchange flow. Exchanges that move
// rows inside writer and reader calls have no work of their own, so the
// task completes on its first run; it exists to give the scheduler a node
// per exchange step in the task graph.
type Task struct {
	id    uint64
	rctx  *exec.RequestContext
	owner Step
}

// NewTask creates the task for one flow of the owning step.
func NewTask(rctx *exec.RequestContext, owner Step) *Task {
	return &Task{
		id:    nextTaskID.Inc(),
		rctx:  rctx,
		owner: owner,
	}
}

// ID returns the task's scheduler id.
func (t *Task) ID() uint64 { return t.id }

// Run implements exec.Task.
func (t *Task) Run(ctx context.Context) (_ exec.TaskResult, err error) {
	defer mon.Task()(&ctx)(&err)

	t.rctx.Logger().Debug("exchange task complete",
		zap.Uint64("task", t.id),
		zap.Stringer("kind", t.owner.Kind()))
	return exec.Complete, nil
}

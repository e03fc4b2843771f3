// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package exec holds the execution-plane contracts shared by steps,
// exchanges and the task scheduler: the per-request context, the task
// interface and step kinds.
package exec

import (
	"sync"

	"go.uber.org/zap"
)

// RequestContext carries per-query execution state through the dataflow
// graph: the request's logger and the first fatal error raised by the data
// plane. The exchange fabric passes it along for diagnostics and resource
// attribution without interpreting it further.
type RequestContext struct {
	log *zap.Logger

	mu  sync.Mutex
	err error
}

// NewRequestContext creates a context logging through log. A nil logger
// disables logging.
func NewRequestContext(log *zap.Logger) *RequestContext {
	if log == nil {
		log = zap.NewNop()
	}
	return &RequestContext{log: log}
}

// Logger returns the request's logger.
func (rctx *RequestContext) Logger() *zap.Logger { return rctx.log }

// RaiseError records a fatal error for the request. The first error wins;
// later calls keep the original.
func (rctx *RequestContext) RaiseError(err error) {
	if err == nil {
		return
	}
	rctx.mu.Lock()
	defer rctx.mu.Unlock()
	if rctx.err == nil {
		rctx.err = err
		rctx.log.Error("request failed", zap.Error(err))
	}
}

// Err returns the recorded fatal error, if any.
func (rctx *RequestContext) Err() error {
	rctx.mu.Lock()
	defer rctx.mu.Unlock()
	return rctx.err
}

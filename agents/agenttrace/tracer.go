/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Tracer creates traces and receives them once they complete.
type Tracer interface {
	NewTrace(ctx context.Context, model, prompt string) *Trace
	RecordTrace(trace *Trace)
}

// TraceCallback receives completed traces.
type TraceCallback func(*Trace)

type byCodeTracer struct {
	callbacks []TraceCallback
}

// ByCode returns a Tracer that hands every completed trace to callbacks,
// running them concurrently and waiting for all of them.
func ByCode(callbacks ...TraceCallback) Tracer {
	return &byCodeTracer{callbacks: callbacks}
}

func (t *byCodeTracer) NewTrace(ctx context.Context, model, prompt string) *Trace {
	return newTrace(ctx, t, model, prompt)
}

func (t *byCodeTracer) RecordTrace(trace *Trace) {
	var g errgroup.Group
	for _, cb := range t.callbacks {
		if cb == nil {
			continue
		}
		g.Go(func() error {
			cb(trace)
			return nil
		})
	}
	_ = g.Wait()
}

type tracerKey struct{}

// WithTracer attaches tracer to ctx.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// TracerFromContext returns the tracer on ctx, falling back to one that logs.
func TracerFromContext(ctx context.Context) Tracer {
	if tracer, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return tracer
	}
	return NewDefaultTracer(ctx)
}

// StartTrace starts a trace with the tracer on ctx.
func StartTrace(ctx context.Context, model, prompt string) *Trace {
	return TracerFromContext(ctx).NewTrace(ctx, model, prompt)
}

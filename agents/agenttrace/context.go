/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// RunContext identifies the pipeline run and stage an execution belongs to.
type RunContext struct {
	RunID string `json:"run_id,omitempty"`
	Stage string `json:"stage,omitempty"`
}

// EnrichAttributes appends the bounded parts of the run context to base.
// RunID is unbounded and is only attached to spans.
func (r RunContext) EnrichAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+1)
	copy(attrs, base)
	if r.Stage != "" {
		attrs = append(attrs, attribute.String("stage", r.Stage))
	}
	return attrs
}

type runContextKey struct{}

// WithRunContext attaches rc to ctx.
func WithRunContext(ctx context.Context, rc RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// GetRunContext returns the run context on ctx, or the zero value.
func GetRunContext(ctx context.Context) RunContext {
	rc, _ := ctx.Value(runContextKey{}).(RunContext)
	return rc
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// NewDefaultTracer logs a summary of each completed trace, and the full
// rendering at debug level.
func NewDefaultTracer(ctx context.Context) Tracer {
	logger := clog.FromContext(ctx)
	return ByCode(func(trace *Trace) {
		l := logger.With("trace_id", trace.ID).
			With("stage", trace.Stage).
			With("model", trace.Model).
			With("duration_ms", trace.Duration().Milliseconds()).
			With("tool_calls", len(trace.ToolCalls))
		if trace.Error != nil {
			l.With("error", trace.Error.Error()).Warn("Agent trace failed")
		} else {
			l.Info("Agent trace completed")
		}
		l.Debug("Agent trace", "trace", trace.String())
	})
}

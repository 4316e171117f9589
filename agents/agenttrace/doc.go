/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace records what an executor did while producing one stage
artifact: the prompt it sent, the tools the model called and the text it
returned. Each trace is also an OpenTelemetry span ("agent.execution") with
a child span per tool call.

The runner tags the context with the run and stage before calling an executor:

	ctx = agenttrace.WithRunContext(ctx, agenttrace.RunContext{
		RunID: runID,
		Stage: "research",
	})

Executors then open and close traces through the tracer on the context:

	trace := agenttrace.StartTrace(ctx, "claude-sonnet-4-5", prompt)
	call := trace.StartToolCall("toolu_1", "web_search", map[string]any{"query": q})
	call.Complete(results, nil)
	trace.Complete(text, nil)

Without a tracer on the context, completed traces are logged with clog.
Tests install ByCode to capture them.
*/
package agenttrace

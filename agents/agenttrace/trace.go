/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentation = "chainguard.dev/casecrew/agents/agenttrace"

// Reasoning is a block of model thinking surfaced by the provider.
type Reasoning struct {
	Thinking string `json:"thinking"`
}

// ToolCall is one tool invocation inside a trace.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Params    map[string]any `json:"params"`
	Result    any            `json:"result,omitempty"`
	Error     error          `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`

	trace *Trace
	mu    sync.Mutex
	span  oteltrace.Span
}

// Trace follows one executor run from prompt to final text.
type Trace struct {
	ID          string      `json:"id"`
	RunID       string      `json:"run_id,omitempty"`
	Stage       string      `json:"stage,omitempty"`
	Model       string      `json:"model"`
	InputPrompt string      `json:"input_prompt"`
	ToolCalls   []*ToolCall `json:"tool_calls"`
	Reasoning   []Reasoning `json:"reasoning,omitempty"`
	Result      string      `json:"result"`
	Error       error       `json:"error,omitempty"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`

	tracer Tracer
	mu     sync.Mutex
	ctx    context.Context
	span   oteltrace.Span
}

func newTrace(ctx context.Context, tracer Tracer, model, prompt string) *Trace {
	rc := GetRunContext(ctx)
	attrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.Int("agent.prompt.length", len(prompt)),
	}
	if rc.RunID != "" {
		attrs = append(attrs, attribute.String("run_id", rc.RunID))
	}
	if rc.Stage != "" {
		attrs = append(attrs, attribute.String("stage", rc.Stage))
	}
	ctx, span := otel.Tracer(instrumentation).Start(ctx, "agent.execution", oteltrace.WithAttributes(attrs...))

	return &Trace{
		ID:          uuid.NewString(),
		RunID:       rc.RunID,
		Stage:       rc.Stage,
		Model:       model,
		InputPrompt: prompt,
		ToolCalls:   []*ToolCall{},
		StartTime:   time.Now(),
		tracer:      tracer,
		ctx:         ctx,
		span:        span,
	}
}

// StartToolCall opens a child span for a tool invocation. Complete adds the
// call to the trace.
func (t *Trace) StartToolCall(id, name string, params map[string]any) *ToolCall {
	_, span := otel.Tracer(instrumentation).Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
	))
	return &ToolCall{
		ID:        id,
		Name:      name,
		Params:    params,
		StartTime: time.Now(),
		trace:     t,
		span:      span,
	}
}

// BadToolCall records a call the model made to an unknown tool or with
// unusable arguments.
func (t *Trace) BadToolCall(id, name string, params map[string]any, err error) {
	_, span := otel.Tracer(instrumentation).Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.id", id),
	))
	span.SetStatus(codes.Error, err.Error())
	span.End()

	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ToolCalls = append(t.ToolCalls, &ToolCall{
		ID:        id,
		Name:      name,
		Params:    params,
		Error:     err,
		StartTime: now,
		EndTime:   now,
		trace:     t,
	})
}

// AddReasoning appends a thinking block.
func (t *Trace) AddReasoning(thinking string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Reasoning = append(t.Reasoning, Reasoning{Thinking: thinking})
}

// RecordTokenUsage puts token counts on the execution span.
func (t *Trace) RecordTokenUsage(inputTokens, outputTokens int64) {
	t.span.SetAttributes(
		attribute.Int64("tokens.input", inputTokens),
		attribute.Int64("tokens.output", outputTokens),
		attribute.Int64("tokens.total", inputTokens+outputTokens),
	)
}

// Complete finishes the tool call and appends it to its trace.
func (tc *ToolCall) Complete(result any, err error) {
	tc.mu.Lock()
	tc.Result = result
	tc.Error = err
	tc.EndTime = time.Now()
	tc.mu.Unlock()

	endSpan(tc.span, err)

	tc.trace.mu.Lock()
	defer tc.trace.mu.Unlock()
	tc.trace.ToolCalls = append(tc.trace.ToolCalls, tc)
}

// Duration is how long the call ran, or has been running.
func (tc *ToolCall) Duration() time.Duration {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return elapsed(tc.StartTime, tc.EndTime)
}

// Complete finishes the trace and hands it to its tracer.
func (t *Trace) Complete(result string, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	t.mu.Unlock()

	endSpan(t.span, err)
	t.tracer.RecordTrace(t)
}

// Duration is how long the trace ran, or has been running.
func (t *Trace) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return elapsed(t.StartTime, t.EndTime)
}

func endSpan(span oteltrace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func elapsed(start, end time.Time) time.Duration {
	if end.IsZero() {
		return time.Since(start)
	}
	return end.Sub(start)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// String renders the trace for logs. Long values are clipped.
func (t *Trace) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	if t.Stage != "" {
		fmt.Fprintf(&sb, "Stage: %s\n", t.Stage)
	}
	fmt.Fprintf(&sb, "Model: %s\n", t.Model)
	fmt.Fprintf(&sb, "Prompt: %q\n", clip(t.InputPrompt, 500))
	fmt.Fprintf(&sb, "Duration: %v\n", elapsed(t.StartTime, t.EndTime))

	if len(t.Reasoning) > 0 {
		fmt.Fprintf(&sb, "\nReasoning (%d blocks):\n", len(t.Reasoning))
		for i, r := range t.Reasoning {
			fmt.Fprintf(&sb, "  [%d] %s\n", i+1, clip(r.Thinking, 200))
		}
	}

	if len(t.ToolCalls) == 0 {
		sb.WriteString("\nNo tool calls\n")
	} else {
		fmt.Fprintf(&sb, "\nTool Calls (%d):\n", len(t.ToolCalls))
		for i, tc := range t.ToolCalls {
			fmt.Fprintf(&sb, "  [%d] %s (ID: %s)\n", i+1, tc.Name, tc.ID)
			fmt.Fprintf(&sb, "      Duration: %v\n", elapsed(tc.StartTime, tc.EndTime))
			for _, k := range slices.Sorted(maps.Keys(tc.Params)) {
				fmt.Fprintf(&sb, "      %s: %v\n", k, tc.Params[k])
			}
			switch {
			case tc.Error != nil:
				fmt.Fprintf(&sb, "      Error: %v\n", tc.Error)
			case tc.Result != nil:
				fmt.Fprintf(&sb, "      Result: %s\n", clip(fmt.Sprint(tc.Result), 200))
			}
		}
	}

	sb.WriteString("\nCompletion:\n")
	if t.Error != nil {
		fmt.Fprintf(&sb, "  Error: %v\n", t.Error)
	} else {
		fmt.Fprintf(&sb, "  Result: %s\n", clip(t.Result, 500))
	}
	return sb.String()
}

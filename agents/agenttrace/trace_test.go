/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
)

func TestTraceLifecycle(t *testing.T) {
	var got []*Trace
	ctx := WithTracer(context.Background(), ByCode(func(tr *Trace) { got = append(got, tr) }))
	ctx = WithRunContext(ctx, RunContext{RunID: "run-1", Stage: "research"})

	tr := StartTrace(ctx, "gpt-4o", "find competitors")
	tr.StartToolCall("c1", "web_search", map[string]any{"query": "left-handed"}).Complete([]string{"a"}, nil)
	tr.BadToolCall("c2", "launch_rocket", nil, errors.New("unknown tool"))
	tr.AddReasoning("thinking")
	tr.RecordTokenUsage(10, 5)
	tr.Complete("report", nil)

	if len(got) != 1 {
		t.Fatalf("recorded %d traces, want 1", len(got))
	}
	rec := got[0]
	if rec.RunID != "run-1" || rec.Stage != "research" || rec.Model != "gpt-4o" {
		t.Errorf("trace identity = %q/%q/%q", rec.RunID, rec.Stage, rec.Model)
	}
	if rec.Result != "report" || rec.Error != nil {
		t.Errorf("trace result = %q, %v", rec.Result, rec.Error)
	}
	var names []string
	for _, tc := range rec.ToolCalls {
		names = append(names, tc.Name)
	}
	if diff := cmp.Diff([]string{"web_search", "launch_rocket"}, names); diff != "" {
		t.Errorf("tool calls (-want +got):\n%s", diff)
	}
	if rec.ToolCalls[1].Error == nil {
		t.Error("bad tool call has no error")
	}
	if rec.EndTime.Before(rec.StartTime) {
		t.Error("trace ended before it started")
	}
}

func TestTraceString(t *testing.T) {
	tr := ByCode().NewTrace(WithRunContext(context.Background(), RunContext{Stage: "solve"}), "m", "prompt")
	tr.StartToolCall("1", "scrape_website", map[string]any{"url": "https://example.com"}).Complete(strings.Repeat("x", 300), nil)
	tr.Complete("", errors.New("model refused"))

	s := tr.String()
	for _, want := range []string{"Stage: solve", "Model: m", "scrape_website (ID: 1)", "url: https://example.com", "...", "Error: model refused"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestConcurrentToolCalls(t *testing.T) {
	tr := ByCode().NewTrace(context.Background(), "m", "p")
	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			tr.StartToolCall("id", "web_search", nil).Complete("ok", nil)
		})
	}
	wg.Wait()
	tr.Complete("done", nil)
	if len(tr.ToolCalls) != 20 {
		t.Errorf("tool calls = %d, want 20", len(tr.ToolCalls))
	}
}

func TestByCodeRunsEveryCallback(t *testing.T) {
	var n atomic.Int32
	cb := func(*Trace) { n.Add(1) }
	tracer := ByCode(cb, nil, cb, cb)
	tracer.NewTrace(context.Background(), "m", "p").Complete("r", nil)
	if n.Load() != 3 {
		t.Errorf("callbacks run = %d, want 3", n.Load())
	}
}

func TestTracerFromContext(t *testing.T) {
	ctx := context.Background()
	if TracerFromContext(ctx) == nil {
		t.Fatal("TracerFromContext() without a tracer = nil")
	}
	want := ByCode()
	if got := TracerFromContext(WithTracer(ctx, want)); got != want {
		t.Errorf("TracerFromContext() = %v, want %v", got, want)
	}
	// The default tracer logs and must not panic on a failed trace.
	StartTrace(ctx, "m", "p").Complete("", errors.New("boom"))
}

func TestRunContext(t *testing.T) {
	if got := GetRunContext(context.Background()); got != (RunContext{}) {
		t.Errorf("GetRunContext(empty) = %+v", got)
	}
	rc := RunContext{RunID: "r", Stage: "frame"}
	if got := GetRunContext(WithRunContext(context.Background(), rc)); got != rc {
		t.Errorf("GetRunContext() = %+v, want %+v", got, rc)
	}

	base := []attribute.KeyValue{attribute.String("model", "m")}
	got := rc.EnrichAttributes(base)
	want := []attribute.KeyValue{attribute.String("model", "m"), attribute.String("stage", "frame")}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b attribute.KeyValue) bool { return a == b })); diff != "" {
		t.Errorf("EnrichAttributes() (-want +got):\n%s", diff)
	}
	if len(base) != 1 {
		t.Error("EnrichAttributes() mutated its input")
	}
	if got := (RunContext{}).EnrichAttributes(base); len(got) != 1 {
		t.Errorf("EnrichAttributes() without stage = %v", got)
	}
}

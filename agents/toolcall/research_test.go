/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"chainguard.dev/casecrew/agents/agenttrace"
	"chainguard.dev/casecrew/agents/toolcall"
	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"github.com/google/go-cmp/cmp"
)

func researchTools(cb callbacks.ResearchCallbacks) map[string]toolcall.Tool {
	provider := toolcall.NewResearchToolsProvider(toolcall.NewEmptyToolsProvider())
	return provider.Tools(toolcall.NewResearchTools(toolcall.EmptyTools{}, cb))
}

func TestResearchToolsOffered(t *testing.T) {
	search := func(context.Context, string, int) ([]callbacks.SearchResult, error) { return nil, nil }
	scrape := func(context.Context, string) (callbacks.Page, error) { return callbacks.Page{}, nil }

	tests := []struct {
		name string
		cb   callbacks.ResearchCallbacks
		want []string
	}{
		{name: "none", cb: callbacks.ResearchCallbacks{}, want: nil},
		{name: "search only", cb: callbacks.ResearchCallbacks{Search: search}, want: []string{"web_search"}},
		{name: "both", cb: callbacks.ResearchCallbacks{Search: search, Scrape: scrape}, want: []string{"scrape_website", "web_search"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Sorted(maps.Keys(researchTools(tt.cb)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tools (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWebSearchHandler(t *testing.T) {
	var gotQuery string
	var gotLimit int
	tools := researchTools(callbacks.ResearchCallbacks{
		Search: func(_ context.Context, q string, limit int) ([]callbacks.SearchResult, error) {
			gotQuery, gotLimit = q, limit
			return []callbacks.SearchResult{{Title: "T", Link: "https://example.com", Position: 1}}, nil
		},
	})

	def := tools[toolcall.WebSearchTool].Def
	var required []string
	for _, p := range def.Parameters {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if diff := cmp.Diff([]string{"reasoning", "query"}, required); diff != "" {
		t.Errorf("required params (-want +got):\n%s", diff)
	}

	trace := agenttrace.ByCode().NewTrace(context.Background(), "m", "p")
	resp := toolcall.Dispatch(context.Background(), tools, toolcall.ToolCall{
		ID:   "call-1",
		Name: toolcall.WebSearchTool,
		Args: map[string]any{"reasoning": "market size", "query": "left-handed products", "num_results": float64(50)},
	}, trace)

	if gotQuery != "left-handed products" || gotLimit != 20 {
		t.Errorf("search called with (%q, %d), want (left-handed products, 20)", gotQuery, gotLimit)
	}
	results, ok := resp["results"].([]callbacks.SearchResult)
	if !ok || len(results) != 1 {
		t.Fatalf("response = %v", resp)
	}
	if len(trace.ToolCalls) != 1 || trace.ToolCalls[0].Name != toolcall.WebSearchTool {
		t.Errorf("trace tool calls = %v", trace.ToolCalls)
	}
}

func TestScrapeHandlerError(t *testing.T) {
	tools := researchTools(callbacks.ResearchCallbacks{
		Scrape: func(context.Context, string) (callbacks.Page, error) {
			return callbacks.Page{}, errors.New("status 404")
		},
	})
	trace := agenttrace.ByCode().NewTrace(context.Background(), "m", "p")
	got := toolcall.Dispatch(context.Background(), tools, toolcall.ToolCall{
		ID:   "c",
		Name: toolcall.ScrapeWebsiteTool,
		Args: map[string]any{"url": "https://example.com/missing"},
	}, trace)
	want := map[string]any{"error": "status 404", "url": "https://example.com/missing"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dispatch() (-want +got):\n%s", diff)
	}
}

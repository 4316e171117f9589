/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudetool_test

import (
	"encoding/json"
	"testing"

	"chainguard.dev/casecrew/agents/toolcall"
	"chainguard.dev/casecrew/agents/toolcall/claudetool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/go-cmp/cmp"
)

var searchDef = toolcall.Definition{
	Name:        "web_search",
	Description: "Search the web.",
	Parameters: []toolcall.Parameter{
		{Name: "query", Type: "string", Description: "Query", Required: true},
		{Name: "num_results", Type: "integer"},
	},
}

func TestDefinition(t *testing.T) {
	got := claudetool.Definition(searchDef)
	if got.Name != "web_search" {
		t.Errorf("Name = %q", got.Name)
	}
	if diff := cmp.Diff([]string{"query"}, got.InputSchema.Required); diff != "" {
		t.Errorf("Required (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"query":       map[string]any{"type": "string", "description": "Query"},
		"num_results": map[string]any{"type": "integer"},
	}
	if diff := cmp.Diff(want, got.InputSchema.Properties); diff != "" {
		t.Errorf("Properties (-want +got):\n%s", diff)
	}
}

func TestToolsSorted(t *testing.T) {
	got := claudetool.Tools(map[string]toolcall.Tool{
		"web_search":     {Def: searchDef},
		"scrape_website": {Def: toolcall.Definition{Name: "scrape_website"}},
	})
	var names []string
	for _, u := range got {
		names = append(names, u.OfTool.Name)
	}
	if diff := cmp.Diff([]string{"scrape_website", "web_search"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestCall(t *testing.T) {
	got, err := claudetool.Call(anthropic.ToolUseBlock{
		ID:    "toolu_1",
		Name:  "web_search",
		Input: json.RawMessage(`{"query":"q","num_results":3}`),
	})
	if err != nil {
		t.Fatalf("Call() = %v", err)
	}
	want := toolcall.ToolCall{ID: "toolu_1", Name: "web_search", Args: map[string]any{"query": "q", "num_results": float64(3)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Call() (-want +got):\n%s", diff)
	}

	if _, err := claudetool.Call(anthropic.ToolUseBlock{ID: "x", Name: "t", Input: json.RawMessage(`{`)}); err == nil {
		t.Error("Call(malformed) succeeded")
	}
}

func TestResult(t *testing.T) {
	ok, err := claudetool.Result("toolu_1", map[string]any{"results": []string{"a"}})
	if err != nil {
		t.Fatalf("Result() = %v", err)
	}
	if ok.OfToolResult == nil || ok.OfToolResult.ToolUseID != "toolu_1" {
		t.Fatalf("Result() = %+v", ok)
	}
	if got := ok.OfToolResult.Content[0].OfText.Text; got != `{"results":["a"]}` {
		t.Errorf("text = %s", got)
	}
	if ok.OfToolResult.IsError.Valid() {
		t.Error("success marked as error")
	}

	failed, err := claudetool.Result("toolu_2", map[string]any{"error": "boom"})
	if err != nil {
		t.Fatalf("Result() = %v", err)
	}
	if !failed.OfToolResult.IsError.Value {
		t.Error("error response not marked as error")
	}
}

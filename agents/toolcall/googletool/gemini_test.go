/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googletool_test

import (
	"testing"

	"chainguard.dev/casecrew/agents/toolcall"
	"chainguard.dev/casecrew/agents/toolcall/googletool"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestDeclaration(t *testing.T) {
	got := googletool.Declaration(toolcall.Definition{
		Name:        "scrape_website",
		Description: "Fetch a page.",
		Parameters: []toolcall.Parameter{
			{Name: "url", Type: "string", Description: "URL", Required: true},
			{Name: "max_chars", Type: "integer"},
			{Name: "weird", Type: "null"},
		},
	})
	want := &genai.FunctionDeclaration{
		Name:        "scrape_website",
		Description: "Fetch a page.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"url":       {Type: genai.TypeString, Description: "URL"},
				"max_chars": {Type: genai.TypeInteger},
				"weird":     {Type: genai.TypeString},
			},
			Required: []string{"url"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() (-want +got):\n%s", diff)
	}
}

func TestTools(t *testing.T) {
	if got := googletool.Tools(nil); got != nil {
		t.Errorf("Tools(nil) = %v, want nil", got)
	}
	got := googletool.Tools(map[string]toolcall.Tool{
		"web_search":     {Def: toolcall.Definition{Name: "web_search"}},
		"scrape_website": {Def: toolcall.Definition{Name: "scrape_website"}},
	})
	if len(got) != 1 || len(got[0].FunctionDeclarations) != 2 {
		t.Fatalf("Tools() = %v", got)
	}
	if got[0].FunctionDeclarations[0].Name != "scrape_website" {
		t.Errorf("first declaration = %q, want scrape_website", got[0].FunctionDeclarations[0].Name)
	}
}

func TestCallAndResponse(t *testing.T) {
	fc := &genai.FunctionCall{ID: "f1", Name: "web_search"}
	call := googletool.Call(fc)
	if call.Args == nil || call.ID != "f1" || call.Name != "web_search" {
		t.Errorf("Call() = %+v", call)
	}

	part := googletool.Response(fc, map[string]any{"results": 0})
	want := &genai.FunctionResponse{ID: "f1", Name: "web_search", Response: map[string]any{"results": 0}}
	if diff := cmp.Diff(want, part.FunctionResponse); diff != "" {
		t.Errorf("Response() (-want +got):\n%s", diff)
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"testing"

	"chainguard.dev/casecrew/agents/schema"
	"github.com/google/go-cmp/cmp"
)

type scrapeArgs struct {
	URL      string `json:"url" jsonschema:"required" jsonschema_description:"Page to fetch"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema_description:"Truncate the page text, e.g. 4000"`
	Headers  struct {
		Accept string `json:"accept,omitempty"`
	} `json:"headers,omitzero"`
}

func TestProperties(t *testing.T) {
	got := schema.Properties(schema.ReflectType[scrapeArgs]())
	want := []schema.Property{
		{Name: "url", Type: "string", Description: "Page to fetch", Required: true},
		{Name: "max_chars", Type: "integer", Description: "Truncate the page text, e.g. 4000"},
		{Name: "headers", Type: "object"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Properties() (-want +got):\n%s", diff)
	}
}

func TestPropertiesNil(t *testing.T) {
	if got := schema.Properties(nil); got != nil {
		t.Errorf("Properties(nil) = %v", got)
	}
}

func TestReflectInlinesNestedTypes(t *testing.T) {
	raw, err := json.Marshal(schema.ReflectType[scrapeArgs]())
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if _, ok := doc["$defs"]; ok {
		t.Errorf("schema has $defs, want nested types inlined: %s", raw)
	}
	if doc["type"] != "object" {
		t.Errorf("type = %v, want object", doc["type"])
	}
}

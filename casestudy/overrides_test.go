/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const overrides = `
stages:
  - name: research
    model: claude-sonnet-4-5
    capabilities: [generate, search]
  - name: frame
    description: Frame the problem in one paragraph.
  - name: review
  - name: solve
    persist: false
`

func TestParseSpecs(t *testing.T) {
	got, err := casestudy.ParseSpecs([]byte(overrides))
	require.NoError(t, err)
	require.Len(t, got, 4)

	defaults := casestudy.DefaultSpecs()
	want := casestudy.DefaultSpecs()
	want[0].Model = "claude-sonnet-4-5"
	want[0].Capabilities = []pipeline.Capability{pipeline.CapabilityGenerate, pipeline.CapabilitySearch}
	want[1].Description = "Frame the problem in one paragraph."
	want[3].Persist = false

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSpecs() (-want +got):\n%s", diff)
	}
	if got[2].Role != defaults[2].Role || got[1].Backstory != defaults[1].Backstory {
		t.Error("unset fields were not inherited from the default stage")
	}
}

func TestParseSpecsNewStage(t *testing.T) {
	got, err := casestudy.ParseSpecs([]byte(`
stages:
  - name: brainstorm
    description: List ten ideas.
    output: ideas
    capabilities: [generate]
    role: Founder
`))
	require.NoError(t, err)
	want := []casestudy.Spec{{
		Definition: pipeline.Definition{
			Name:         "brainstorm",
			Description:  "List ten ideas.",
			Output:       "ideas",
			Capabilities: []pipeline.Capability{pipeline.CapabilityGenerate},
		},
		Role: "Founder",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSpecs() (-want +got):\n%s", diff)
	}
}

func TestParseSpecsErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{name: "not yaml", yaml: "stages: [", invalid: false},
		{name: "empty", yaml: "stages: []", invalid: true},
		{name: "unknown capability", yaml: "stages:\n  - name: research\n    capabilities: [telepathy]\n", invalid: true},
		{name: "dangling dependency", yaml: "stages:\n  - name: frame\n", invalid: true},
		{name: "cycle", yaml: "stages:\n  - name: research\n    depends_on: [solution]\n  - name: frame\n  - name: review\n  - name: solve\n", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := casestudy.ParseSpecs([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseSpecs() succeeded")
			}
			if got := errors.Is(err, pipeline.ErrInvalidPipeline); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidPipeline) = %v, want %v (err = %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrides), 0o600))

	specs, err := casestudy.LoadSpecs(path)
	require.NoError(t, err)
	if specs[0].Model != "claude-sonnet-4-5" {
		t.Errorf("research model = %q", specs[0].Model)
	}

	if _, err := casestudy.LoadSpecs(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSpecs() of a missing file succeeded")
	}
}

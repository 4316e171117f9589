/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"slices"
)

// Capability names an external service a stage needs in order to run.
type Capability string

const (
	// CapabilitySearch is web search.
	CapabilitySearch Capability = "search"
	// CapabilityScrape is fetching and extracting text from web pages.
	CapabilityScrape Capability = "scrape"
	// CapabilityGenerate is LLM text generation.
	CapabilityGenerate Capability = "generate"
)

// Capabilities is the set of capabilities available to a run.
type Capabilities map[Capability]bool

// NewCapabilities returns a set containing cs.
func NewCapabilities(cs ...Capability) Capabilities {
	out := make(Capabilities, len(cs))
	for _, c := range cs {
		out[c] = true
	}
	return out
}

// Has reports whether capability is available.
func (c Capabilities) Has(capability Capability) bool {
	return c[capability]
}

// Missing returns the entries of required that are not available, in the
// order given.
func (c Capabilities) Missing(required []Capability) []Capability {
	var out []Capability
	for _, r := range required {
		if !c.Has(r) && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// Definition is the static description of a stage.
type Definition struct {
	// Name uniquely identifies the stage and keys its artifact in the store.
	Name string `json:"name" yaml:"name"`

	// Description is the free-text task the stage performs.
	Description string `json:"description" yaml:"description"`

	// DependsOn lists the artifact names the stage consumes, in order.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	// Capabilities lists the external services the stage requires.
	Capabilities []Capability `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`

	// Output is the unique name of the artifact the stage produces.
	Output string `json:"output" yaml:"output"`

	// Persist additionally writes the artifact to <Output>.txt.
	Persist bool `json:"persist,omitempty" yaml:"persist,omitempty"`
}

// RootInputs are the two free-text values supplied once per run.
type RootInputs struct {
	CaseStudyDetails string `json:"case_study_details" yaml:"case_study_details"`
	Context          string `json:"context" yaml:"context"`
}

// Inputs maps upstream artifact names to their text.
type Inputs map[string]string

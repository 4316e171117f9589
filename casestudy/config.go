/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy

import (
	"chainguard.dev/casecrew/agents/metaagent"
	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"chainguard.dev/casecrew/pipeline"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o-mini-2024-07-18"

// Models offered for selection, default first.
var Models = []string{
	DefaultModel,
	"gpt-4",
	"gpt-3.5-turbo",
	"claude-sonnet-4-5",
	"gemini-2.5-flash",
}

// Config is everything a run needs from outside: model, provider keys and
// research handles. It is passed explicitly; nothing is read from the
// process environment.
type Config struct {
	// Model generates every stage's text unless the stage names its own.
	Model string

	// Credentials holds the LLM provider keys.
	Credentials metaagent.Credentials

	// Research backs the web_search and scrape_website tools. A nil func
	// makes the matching capability unavailable.
	Research callbacks.ResearchCallbacks

	// Temperature overrides the provider default when non-nil.
	Temperature *float64

	// MaxTurns bounds tool-calling round trips per stage. Zero keeps the
	// executor default.
	MaxTurns int
}

// model returns the configured model or DefaultModel.
func (c Config) model() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// CanGenerate reports whether model (or the configured model when empty)
// has a provider with credentials.
func (c Config) CanGenerate(model string) bool {
	if model == "" {
		model = c.model()
	}
	p, err := metaagent.ProviderFor(model)
	return err == nil && c.Credentials.Has(p)
}

// Capabilities returns what a run with this configuration can use.
func (c Config) Capabilities() pipeline.Capabilities {
	caps := pipeline.Capabilities{}
	if c.CanGenerate("") {
		caps[pipeline.CapabilityGenerate] = true
	}
	if c.Research.HasSearch() {
		caps[pipeline.CapabilitySearch] = true
	}
	if c.Research.HasScrape() {
		caps[pipeline.CapabilityScrape] = true
	}
	return caps
}

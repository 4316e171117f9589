/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"chainguard.dev/casecrew/agents/metrics"
	"chainguard.dev/casecrew/agents/promptbuilder"
	"chainguard.dev/casecrew/agents/toolcall"
)

// Config defines the configuration for a meta-agent instance.
// CB is the type providing all tool callbacks.
type Config[CB any] struct {
	// SystemInstructions is the system prompt that defines the agent's role and behavior.
	SystemInstructions *promptbuilder.Prompt

	// UserPrompt is the template for formatting the user's request.
	// The Req type is bound to this template via its Bind method.
	UserPrompt *promptbuilder.Prompt

	// Tools provides all tool definitions for this agent. Nil means no tools.
	Tools toolcall.ToolProvider[CB]

	// Temperature overrides the provider default when non-nil.
	Temperature *float64

	// MaxTurns bounds tool-calling round trips. Zero keeps the executor default.
	MaxTurns int

	// AttributeEnricher adds attributes to the agent's GenAI metrics.
	AttributeEnricher metrics.AttributeEnricher
}

// Credentials holds the per-provider API keys. Empty keys disable the
// provider, unless a Vertex AI project is set: Claude and Gemini models
// then go through Vertex AI with Google application default credentials.
type Credentials struct {
	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string

	// VertexProject and VertexRegion select the Vertex AI endpoint used for
	// claude-* and gemini-* models that have no API key.
	VertexProject string
	VertexRegion  string

	// BaseURL points the OpenAI or Anthropic client at another endpoint.
	BaseURL string
}

func (c Credentials) vertex() bool {
	return c.VertexProject != "" && c.VertexRegion != ""
}

// Has reports whether p can be reached.
func (c Credentials) Has(p Provider) bool {
	switch p {
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	case ProviderAnthropic:
		return c.AnthropicKey != "" || c.vertex()
	case ProviderGoogle:
		return c.GeminiKey != "" || c.vertex()
	}
	return false
}

// Any reports whether at least one provider can be reached.
func (c Credentials) Any() bool {
	return c.OpenAIKey != "" || c.AnthropicKey != "" || c.GeminiKey != "" || c.vertex()
}

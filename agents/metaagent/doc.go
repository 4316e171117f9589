/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metaagent builds a text-producing agent on whichever LLM provider
// serves the requested model.
//
// The framework is generic over two type parameters:
//   - Req: The request type (must implement promptbuilder.Bindable)
//   - CB: The callbacks type providing tool implementations
//
// # Model Support
//
// The provider is chosen from the model name:
//   - "gpt-*" and o-series models use OpenAI chat completions
//   - "claude-*" models use Anthropic's Messages API
//   - "gemini-*" models use the Gemini API
//
// Claude and Gemini models without an API key go through Vertex AI when
// Credentials names a project and region.
//
// # Usage
//
// Compose the tool provider for your callbacks type:
//
//	type Callbacks = toolcall.ResearchTools[toolcall.EmptyTools]
//
//	tools := toolcall.NewResearchToolsProvider(toolcall.NewEmptyToolsProvider())
//
// Configure and create the agent:
//
//	config := metaagent.Config[Callbacks]{
//	    SystemInstructions: persona,
//	    UserPrompt:         userPrompt,
//	    Tools:              tools,
//	}
//
//	agent, err := metaagent.New[*Request](ctx, "gpt-4o-mini-2024-07-18", creds, config)
//	text, err := agent.Execute(ctx, request, toolcall.NewResearchTools(toolcall.EmptyTools{}, cb))
//
// New fails with ErrMissingCredentials when the provider has no key, so
// callers can tell a missing capability apart from a broken configuration.
package metaagent

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/casecrew/agents/promptbuilder"
	"chainguard.dev/casecrew/agents/toolcall"
)

// Agent is the interface for a configured meta-agent.
//   - Req must implement promptbuilder.Bindable.
//   - CB is the type providing all tool callbacks.
type Agent[Req promptbuilder.Bindable, CB any] interface {
	// Execute runs the agent with the given request and tool callbacks and
	// returns the model's final text.
	Execute(ctx context.Context, request Req, callbacks CB) (string, error)
}

// Provider names an LLM backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

var (
	// ErrUnsupportedModel is returned for a model name no provider serves.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrMissingCredentials is returned when the provider serving a model
	// has no API key configured.
	ErrMissingCredentials = errors.New("missing credentials")
)

// ProviderFor picks the provider for model from its name:
//   - "gpt-", "o1", "o3" and "o4" models use OpenAI
//   - "claude-" models use Anthropic
//   - "gemini-" models use Google's Gemini API
func ProviderFor(model string) (Provider, error) {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "gpt-"),
		strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return ProviderOpenAI, nil
	case strings.HasPrefix(m, "claude-"):
		return ProviderAnthropic, nil
	case strings.HasPrefix(m, "gemini-"):
		return ProviderGoogle, nil
	default:
		return "", fmt.Errorf("%w: %q (expected gpt-*, o1/o3/o4*, claude-* or gemini-*)", ErrUnsupportedModel, model)
	}
}

// executor is the shape shared by every provider executor.
type executor interface {
	Execute(ctx context.Context, request promptbuilder.Bindable, tools map[string]toolcall.Tool) (string, error)
}

// New creates a meta-agent for model. The provider is chosen by ProviderFor
// and must have a key in creds.
func New[Req promptbuilder.Bindable, CB any](
	ctx context.Context,
	model string,
	creds Credentials,
	config Config[CB],
) (Agent[Req, CB], error) {
	if config.UserPrompt == nil {
		return nil, errors.New("user prompt is required")
	}
	provider, err := ProviderFor(model)
	if err != nil {
		return nil, err
	}
	if !creds.Has(provider) {
		return nil, fmt.Errorf("%w: no %s API key for model %q", ErrMissingCredentials, provider, model)
	}

	var exec executor
	switch provider {
	case ProviderOpenAI:
		exec, err = newOpenAIExecutor(model, creds, config)
	case ProviderAnthropic:
		exec, err = newClaudeExecutor(ctx, model, creds, config)
	case ProviderGoogle:
		exec, err = newGoogleExecutor(ctx, model, creds, config)
	}
	if err != nil {
		return nil, err
	}
	return &agent[Req, CB]{executor: exec, tools: config.Tools}, nil
}

type agent[Req promptbuilder.Bindable, CB any] struct {
	executor executor
	tools    toolcall.ToolProvider[CB]
}

func (a *agent[Req, CB]) Execute(ctx context.Context, request Req, callbacks CB) (string, error) {
	var tools map[string]toolcall.Tool
	if a.tools != nil {
		tools = a.tools.Tools(callbacks)
	}
	return a.executor.Execute(ctx, request, tools)
}

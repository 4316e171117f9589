/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"chainguard.dev/casecrew/agents/executor/googleexecutor"
	"google.golang.org/genai"
)

func newGoogleExecutor[CB any](ctx context.Context, model string, creds Credentials, config Config[CB]) (executor, error) {
	cc := &genai.ClientConfig{
		APIKey:  creds.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if creds.GeminiKey == "" {
		cc = &genai.ClientConfig{
			Project:  creds.VertexProject,
			Location: creds.VertexRegion,
			Backend:  genai.BackendVertexAI,
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}

	opts := []googleexecutor.Option{
		googleexecutor.WithModel(model),
		googleexecutor.WithMaxOutputTokens(32768),
	}
	if config.SystemInstructions != nil {
		opts = append(opts, googleexecutor.WithSystemInstructions(config.SystemInstructions))
	}
	if config.Temperature != nil {
		opts = append(opts, googleexecutor.WithTemperature(float32(*config.Temperature)))
	}
	if config.MaxTurns > 0 {
		opts = append(opts, googleexecutor.WithMaxTurns(config.MaxTurns))
	}
	if config.AttributeEnricher != nil {
		opts = append(opts, googleexecutor.WithAttributeEnricher(config.AttributeEnricher))
	}

	exec, err := googleexecutor.New(client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Google executor: %w", err)
	}
	return exec, nil
}

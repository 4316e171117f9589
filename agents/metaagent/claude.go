/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"chainguard.dev/casecrew/agents/executor/claudeexecutor"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/vertex"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

func newClaudeExecutor[CB any](ctx context.Context, model string, creds Credentials, config Config[CB]) (executor, error) {
	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if creds.AnthropicKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(creds.AnthropicKey))
	} else {
		gcreds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("%w: finding Google credentials for Vertex AI: %w", ErrMissingCredentials, err)
		}
		clientOpts = append(clientOpts, vertex.WithCredentials(ctx, creds.VertexRegion, creds.VertexProject, gcreds))
	}
	if creds.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(creds.BaseURL))
	}
	client := anthropic.NewClient(clientOpts...)

	opts := []claudeexecutor.Option{
		claudeexecutor.WithModel(model),
		claudeexecutor.WithMaxTokens(16000),
	}
	if config.SystemInstructions != nil {
		opts = append(opts, claudeexecutor.WithSystemInstructions(config.SystemInstructions))
	}
	if config.Temperature != nil {
		opts = append(opts, claudeexecutor.WithTemperature(*config.Temperature))
	}
	if config.MaxTurns > 0 {
		opts = append(opts, claudeexecutor.WithMaxTurns(config.MaxTurns))
	}
	if config.AttributeEnricher != nil {
		opts = append(opts, claudeexecutor.WithAttributeEnricher(config.AttributeEnricher))
	}

	exec, err := claudeexecutor.New(client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Claude executor: %w", err)
	}
	return exec, nil
}

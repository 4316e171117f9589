/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"fmt"

	"chainguard.dev/casecrew/agents/executor/openaiexecutor"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func newOpenAIExecutor[CB any](model string, creds Credentials, config Config[CB]) (executor, error) {
	clientOpts := []option.RequestOption{option.WithAPIKey(creds.OpenAIKey)}
	if creds.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(creds.BaseURL))
	}
	// Transient errors are retried by the executor with its own backoff.
	clientOpts = append(clientOpts, option.WithMaxRetries(0))
	client := openai.NewClient(clientOpts...)

	opts := []openaiexecutor.Option{openaiexecutor.WithModel(model)}
	if config.SystemInstructions != nil {
		opts = append(opts, openaiexecutor.WithSystemInstructions(config.SystemInstructions))
	}
	if config.Temperature != nil {
		opts = append(opts, openaiexecutor.WithTemperature(*config.Temperature))
	}
	if config.MaxTurns > 0 {
		opts = append(opts, openaiexecutor.WithMaxTurns(config.MaxTurns))
	}
	if config.AttributeEnricher != nil {
		opts = append(opts, openaiexecutor.WithAttributeEnricher(config.AttributeEnricher))
	}

	exec, err := openaiexecutor.New(client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI executor: %w", err)
	}
	return exec, nil
}

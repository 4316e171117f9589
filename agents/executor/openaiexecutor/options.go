/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"fmt"

	"chainguard.dev/casecrew/agents/executor/retry"
	"chainguard.dev/casecrew/agents/metrics"
	"chainguard.dev/casecrew/agents/promptbuilder"
)

// Option configures the executor.
type Option func(*executor) error

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(e *executor) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0 and 2. It is
// not sent to o-series models.
func WithTemperature(temp float64) Option {
	return func(e *executor) error {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithMaxTokens sets the completion token limit.
func WithMaxTokens(tokens int64) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithSystemInstructions sets the system message.
func WithSystemInstructions(prompt *promptbuilder.Prompt) Option {
	return func(e *executor) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithMaxTurns bounds the number of model round trips in one execution.
func WithMaxTurns(turns int) Option {
	return func(e *executor) error {
		if turns < 1 {
			return fmt.Errorf("max turns must be at least 1, got %d", turns)
		}
		e.maxTurns = turns
		return nil
	}
}

// WithAttributeEnricher adds attributes to every recorded metric.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(e *executor) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithRetryConfig overrides the backoff used for transient API errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(e *executor) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}

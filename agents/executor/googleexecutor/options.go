/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/casecrew/agents/executor/retry"
	"chainguard.dev/casecrew/agents/metrics"
	"chainguard.dev/casecrew/agents/promptbuilder"
)

// Option configures the executor.
type Option func(*executor) error

// WithModel overrides the model. It must be a gemini-* model.
func WithModel(model string) Option {
	return func(e *executor) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0 and 2.
func WithTemperature(temperature float32) Option {
	return func(e *executor) error {
		if temperature < 0 || temperature > 2 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens sets the response token limit.
func WithMaxOutputTokens(tokens int32) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		e.maxOutputTokens = tokens
		return nil
	}
}

// WithSystemInstructions sets the system prompt.
func WithSystemInstructions(prompt *promptbuilder.Prompt) Option {
	return func(e *executor) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithThinking enables thinking with the given token budget. Zero disables
// thinking on models that allow it; -1 lets the model decide.
func WithThinking(budgetTokens int32) Option {
	return func(e *executor) error {
		if budgetTokens < -1 {
			return fmt.Errorf("thinking budget must be -1 or more, got %d", budgetTokens)
		}
		e.thinkingBudget = &budgetTokens
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

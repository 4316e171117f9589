/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/casecrew/agents/agenttrace"
	"chainguard.dev/casecrew/agents/executor/retry"
	"chainguard.dev/casecrew/agents/metrics"
	"chainguard.dev/casecrew/agents/promptbuilder"
	"chainguard.dev/casecrew/agents/toolcall"
	"chainguard.dev/casecrew/agents/toolcall/claudetool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Interface runs one prompt to completion and returns the model's final text.
type Interface interface {
	Execute(ctx context.Context, request promptbuilder.Bindable, tools map[string]toolcall.Tool) (string, error)
}

type executor struct {
	client             anthropic.Client
	model              string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	thinkingBudget     *int64
	maxTurns           int
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates an executor for prompt. The request passed to Execute binds
// the prompt's placeholders.
func New(client anthropic.Client, prompt *promptbuilder.Prompt, opts ...Option) (Interface, error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}
	e := &executor{
		client:       client,
		model:        "claude-sonnet-4-5",
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.2,
		maxTurns:     25,
		genaiMetrics: metrics.NewGenAI("anthropic"),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

func (e *executor) params(prompt string, tools map[string]toolcall.Tool) (anthropic.MessageNewParams, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(e.temperature),
	}
	if len(tools) > 0 {
		params.Tools = claudetool.Tools(tools)
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return params, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if e.thinkingBudget != nil {
		// Extended thinking requires a temperature of 1.
		params.Temperature = anthropic.Float(1.0)
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{BudgetTokens: *e.thinkingBudget},
		}
	}
	return params, nil
}

func (e *executor) Execute(ctx context.Context, request promptbuilder.Bindable, tools map[string]toolcall.Tool) (text string, err error) {
	log := clog.FromContext(ctx).With("model", e.model)

	bound, err := request.Bind(e.prompt)
	if err != nil {
		return "", fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace(ctx, e.model, prompt)
	start := time.Now()
	defer func() {
		e.genaiMetrics.RecordDuration(ctx, e.model, time.Since(start), err)
		trace.Complete(text, err)
	}()

	params, err := e.params(prompt, tools)
	if err != nil {
		return "", err
	}

	log.With("prompt_length", len(prompt)).
		With("tools", len(tools)).
		Info("Starting Claude execution")

	for turn := 1; turn <= e.maxTurns; turn++ {
		message, err := retry.Do(ctx, e.retryConfig, "claude_messages", isRetryableClaudeError, func() (*anthropic.Message, error) {
			return e.client.Messages.New(ctx, params)
		})
		if err != nil {
			return "", fmt.Errorf("claude request failed: %w", err)
		}

		if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.model, message.Usage.InputTokens, message.Usage.OutputTokens)
			trace.RecordTokenUsage(message.Usage.InputTokens, message.Usage.OutputTokens)
		}

		var (
			texts    []string
			toolUses []anthropic.ToolUseBlock
		)
		for _, block := range message.Content {
			switch block.Type {
			case "text":
				texts = append(texts, block.Text)
			case "tool_use":
				toolUses = append(toolUses, anthropic.ToolUseBlock{ID: block.ID, Name: block.Name, Input: block.Input})
			case "thinking":
				trace.AddReasoning(block.Thinking)
			}
		}

		if len(toolUses) == 0 {
			text = strings.TrimSpace(strings.Join(texts, "\n\n"))
			if text == "" {
				return "", fmt.Errorf("no text in Claude response (stop reason %q)", message.StopReason)
			}
			log.With("turns", turn).With("text_length", len(text)).Info("Claude execution complete")
			return text, nil
		}

		params.Messages = append(params.Messages, message.ToParam())
		results := make([]anthropic.ContentBlockParamUnion, 0, len(toolUses))
		for _, use := range toolUses {
			e.genaiMetrics.RecordToolCall(ctx, e.model, use.Name)

			var resp map[string]any
			call, err := claudetool.Call(use)
			if err != nil {
				trace.BadToolCall(use.ID, use.Name, nil, err)
				resp = map[string]any{"error": err.Error()}
			} else {
				resp = toolcall.Dispatch(ctx, tools, call, trace)
			}

			result, err := claudetool.Result(use.ID, resp)
			if err != nil {
				return "", err
			}
			results = append(results, result)
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(results...))
	}
	return "", fmt.Errorf("claude still calling tools after %d turns", e.maxTurns)
}

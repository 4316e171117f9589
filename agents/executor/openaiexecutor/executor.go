/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

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
	"chainguard.dev/casecrew/agents/toolcall/openaitool"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// Interface runs one prompt to completion and returns the model's final text.
type Interface interface {
	Execute(ctx context.Context, request promptbuilder.Bindable, tools map[string]toolcall.Tool) (string, error)
}

// DefaultModel is the model used when WithModel is not given.
const DefaultModel = "gpt-4o-mini-2024-07-18"

type executor struct {
	client             openai.Client
	prompt             *promptbuilder.Prompt
	model              string
	systemInstructions *promptbuilder.Prompt
	temperature        float64
	maxTokens          int64
	maxTurns           int
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates an executor for prompt.
func New(client openai.Client, prompt *promptbuilder.Prompt, opts ...Option) (Interface, error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}
	e := &executor{
		client:       client,
		prompt:       prompt,
		model:        DefaultModel,
		temperature:  0.2,
		maxTokens:    8192,
		maxTurns:     25,
		genaiMetrics: metrics.NewGenAI("openai"),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// reasoningModel reports whether model is an o-series model, which rejects
// sampling parameters.
func reasoningModel(model string) bool {
	return len(model) > 1 && model[0] == 'o' && model[1] >= '0' && model[1] <= '9'
}

func (e *executor) params(prompt string, tools map[string]toolcall.Tool) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(e.model),
		MaxCompletionTokens: openai.Int(e.maxTokens),
	}
	if !reasoningModel(e.model) {
		params.Temperature = openai.Float(e.temperature)
	}
	if len(tools) > 0 {
		params.Tools = openaitool.Tools(tools)
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return params, fmt.Errorf("building system prompt: %w", err)
		}
		params.Messages = append(params.Messages, openai.SystemMessage(system))
	}
	params.Messages = append(params.Messages, openai.UserMessage(prompt))
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
		Info("Starting OpenAI execution")

	for turn := 1; turn <= e.maxTurns; turn++ {
		completion, err := retry.Do(ctx, e.retryConfig, "openai_chat_completion", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
			return e.client.Chat.Completions.New(ctx, params)
		})
		if err != nil {
			return "", fmt.Errorf("openai request failed: %w", err)
		}
		if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
			trace.RecordTokenUsage(completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("no choices in OpenAI response")
		}
		choice := completion.Choices[0]

		if len(choice.Message.ToolCalls) == 0 {
			if choice.Message.Refusal != "" {
				return "", fmt.Errorf("model refused: %s", choice.Message.Refusal)
			}
			text = strings.TrimSpace(choice.Message.Content)
			if text == "" {
				return "", fmt.Errorf("no text in OpenAI response (finish reason %q)", choice.FinishReason)
			}
			log.With("turns", turn).With("text_length", len(text)).Info("OpenAI execution complete")
			return text, nil
		}

		params.Messages = append(params.Messages, choice.Message.ToParam())
		for _, tc := range choice.Message.ToolCalls {
			e.genaiMetrics.RecordToolCall(ctx, e.model, tc.Function.Name)

			var resp map[string]any
			call, err := openaitool.Call(tc)
			if err != nil {
				trace.BadToolCall(tc.ID, tc.Function.Name, nil, err)
				resp = map[string]any{"error": err.Error()}
			} else {
				resp = toolcall.Dispatch(ctx, tools, call, trace)
			}

			msg, err := openaitool.Result(tc.ID, resp)
			if err != nil {
				return "", err
			}
			params.Messages = append(params.Messages, msg)
		}
	}
	return "", fmt.Errorf("openai model still calling tools after %d turns", e.maxTurns)
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

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
	"chainguard.dev/casecrew/agents/toolcall/googletool"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Interface runs one prompt to completion and returns the model's final text.
type Interface interface {
	Execute(ctx context.Context, request promptbuilder.Bindable, tools map[string]toolcall.Tool) (string, error)
}

type executor struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	thinkingBudget     *int32
	maxTurns           int
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates an executor for prompt.
func New(client *genai.Client, prompt *promptbuilder.Prompt, opts ...Option) (Interface, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}
	e := &executor{
		client:          client,
		prompt:          prompt,
		model:           "gemini-2.5-flash",
		temperature:     0.2,
		maxOutputTokens: 8192,
		maxTurns:        25,
		genaiMetrics:    metrics.NewGenAI("google"),
		retryConfig:     retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

func (e *executor) config(tools map[string]toolcall.Tool) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
		Tools:           googletool.Tools(tools),
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return nil, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if e.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  e.thinkingBudget,
		}
	}
	return config, nil
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

	config, err := e.config(tools)
	if err != nil {
		return "", err
	}
	chat, err := e.client.Chats.Create(ctx, e.model, config, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create chat with model %q: %w", e.model, err)
	}

	log.With("prompt_length", len(prompt)).
		With("tools", len(tools)).
		Info("Starting Gemini execution")

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for turn := 1; turn <= e.maxTurns; turn++ {
		resp, err := retry.Do(ctx, e.retryConfig, "gemini_send", isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
			return chat.Send(ctx, parts...)
		})
		if err != nil {
			return "", fmt.Errorf("gemini request failed: %w", err)
		}
		if usage := resp.UsageMetadata; usage != nil {
			e.genaiMetrics.RecordTokens(ctx, e.model, int64(usage.PromptTokenCount), int64(usage.CandidatesTokenCount))
			trace.RecordTokenUsage(int64(usage.PromptTokenCount), int64(usage.CandidatesTokenCount))
		}

		if len(resp.Candidates) == 0 {
			return "", errors.New("no content generated: no candidates")
		}
		candidate := resp.Candidates[0]

		if candidate.FinishReason == genai.FinishReasonMalformedFunctionCall {
			log.With("finish_message", candidate.FinishMessage).
				Warn("Model made a malformed function call, asking it to retry")
			parts = []*genai.Part{genai.NewPartFromText(
				"The function call was malformed. Call one of the declared functions with valid arguments, or answer in text.")}
			continue
		}
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return "", fmt.Errorf("no content generated (finish reason %q)", candidate.FinishReason)
		}

		var (
			texts []string
			calls []*genai.FunctionCall
		)
		for _, part := range candidate.Content.Parts {
			switch {
			case part.Thought:
				trace.AddReasoning(part.Text)
			case part.FunctionCall != nil:
				calls = append(calls, part.FunctionCall)
			case part.Text != "":
				texts = append(texts, part.Text)
			}
		}

		if len(calls) == 0 {
			text = strings.TrimSpace(strings.Join(texts, ""))
			if text == "" {
				return "", fmt.Errorf("no text in Gemini response (finish reason %q)", candidate.FinishReason)
			}
			log.With("turns", turn).With("text_length", len(text)).Info("Gemini execution complete")
			return text, nil
		}

		parts = make([]*genai.Part, 0, len(calls))
		for _, fc := range calls {
			e.genaiMetrics.RecordToolCall(ctx, e.model, fc.Name)
			resp := toolcall.Dispatch(ctx, tools, googletool.Call(fc), trace)
			parts = append(parts, googletool.Response(fc, resp))
		}
	}
	return "", fmt.Errorf("gemini still calling tools after %d turns", e.maxTurns)
}

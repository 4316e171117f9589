/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaitool translates toolcall definitions, calls and responses to
// and from OpenAI chat completion function calling.
package openaitool

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"chainguard.dev/casecrew/agents/toolcall"
	"github.com/openai/openai-go"
)

// Definition converts def to an OpenAI function tool.
func Definition(def toolcall.Definition) openai.ChatCompletionToolParam {
	properties := make(map[string]any, len(def.Parameters))
	required := []string{}
	for _, p := range def.Parameters {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        def.Name,
			Description: openai.String(def.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		},
	}
}

// Tools converts tools, ordered by name.
func Tools(tools map[string]toolcall.Tool) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, name := range slices.Sorted(maps.Keys(tools)) {
		out = append(out, Definition(tools[name].Def))
	}
	return out
}

// Call decodes the JSON arguments of a model tool call.
func Call(tc openai.ChatCompletionMessageToolCall) (toolcall.ToolCall, error) {
	call := toolcall.ToolCall{ID: tc.ID, Name: tc.Function.Name, Args: map[string]any{}}
	if tc.Function.Arguments == "" {
		return call, nil
	}
	if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Args); err != nil {
		return call, fmt.Errorf("parsing arguments for tool %q: %w", tc.Function.Name, err)
	}
	return call, nil
}

// Result encodes a handler response as the tool message answering toolCallID.
func Result(toolCallID string, resp map[string]any) (openai.ChatCompletionMessageParamUnion, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("marshaling tool result: %w", err)
	}
	return openai.ToolMessage(string(data), toolCallID), nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudetool translates toolcall definitions, calls and responses to
// and from the Anthropic Messages API.
package claudetool

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"chainguard.dev/casecrew/agents/toolcall"
	"chainguard.dev/casecrew/agents/toolcall/params"
	"github.com/anthropics/anthropic-sdk-go"
)

// Definition converts def to an Anthropic tool.
func Definition(def toolcall.Definition) anthropic.ToolParam {
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
	return anthropic.ToolParam{
		Name:        def.Name,
		Description: anthropic.String(def.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}

// Tools converts tools, ordered by name so requests are reproducible.
func Tools(tools map[string]toolcall.Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, name := range slices.Sorted(maps.Keys(tools)) {
		tp := Definition(tools[name].Def)
		out = append(out, anthropic.ToolUnionParam{OfTool: &tp})
	}
	return out
}

// Call decodes a tool_use block.
func Call(block anthropic.ToolUseBlock) (toolcall.ToolCall, error) {
	args := map[string]any{}
	if len(block.Input) > 0 {
		if err := json.Unmarshal(block.Input, &args); err != nil {
			return toolcall.ToolCall{ID: block.ID, Name: block.Name}, fmt.Errorf("parsing input for tool %q: %w", block.Name, err)
		}
	}
	return toolcall.ToolCall{ID: block.ID, Name: block.Name, Args: args}, nil
}

// Result encodes a handler response as a tool_result block.
func Result(toolUseID string, resp map[string]any) (anthropic.ContentBlockParamUnion, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshaling tool result: %w", err)
	}
	block := anthropic.ToolResultBlockParam{
		ToolUseID: toolUseID,
		Content: []anthropic.ToolResultBlockParamContentUnion{{
			OfText: &anthropic.TextBlockParam{Text: string(data)},
		}},
	}
	if params.IsError(resp) {
		block.IsError = anthropic.Bool(true)
	}
	return anthropic.ContentBlockParamUnion{OfToolResult: &block}, nil
}

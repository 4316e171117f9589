/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googletool translates toolcall definitions, calls and responses to
// and from Gemini function calling.
package googletool

import (
	"maps"
	"slices"

	"chainguard.dev/casecrew/agents/toolcall"
	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// Declaration converts def to a Gemini function declaration. Unknown
// parameter types fall back to string.
func Declaration(def toolcall.Definition) *genai.FunctionDeclaration {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(def.Parameters)),
	}
	for _, p := range def.Parameters {
		typ, ok := schemaTypes[p.Type]
		if !ok {
			typ = genai.TypeString
		}
		schema.Properties[p.Name] = &genai.Schema{Type: typ, Description: p.Description}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
		Parameters:  schema,
	}
}

// Tools bundles all declarations into one genai.Tool, ordered by name.
// It returns nil for an empty set so no tools are sent at all.
func Tools(tools map[string]toolcall.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, name := range slices.Sorted(maps.Keys(tools)) {
		decls = append(decls, Declaration(tools[name].Def))
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// Call converts a model function call.
func Call(fc *genai.FunctionCall) toolcall.ToolCall {
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}
	return toolcall.ToolCall{ID: fc.ID, Name: fc.Name, Args: args}
}

// Response wraps a handler response as the part answering fc.
func Response(fc *genai.FunctionCall, resp map[string]any) *genai.Part {
	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:       fc.ID,
			Name:     fc.Name,
			Response: resp,
		},
	}
}

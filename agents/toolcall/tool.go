/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"

	"chainguard.dev/casecrew/agents/agenttrace"
	"chainguard.dev/casecrew/agents/schema"
	"chainguard.dev/casecrew/agents/toolcall/params"
	"github.com/chainguard-dev/clog"
)

// ToolCall is a tool invocation decoded from any provider's response.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition is the provider-independent description of a tool.
type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Parameter is one argument of a tool.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean" or "number"
	Description string
	Required    bool
}

// Tool pairs a definition with the handler that serves it. Handlers report
// failures to the model through params.Error rather than returning errors,
// so the conversation can continue.
type Tool struct {
	Def     Definition
	Handler func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any
}

// ParametersOf derives tool parameters from the fields of T.
func ParametersOf[T any]() []Parameter {
	props := schema.Properties(schema.ReflectType[T]())
	out := make([]Parameter, 0, len(props))
	for _, p := range props {
		out = append(out, Parameter{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Required:    p.Required,
		})
	}
	return out
}

// Dispatch runs the handler for call. Calls to tools that are not in tools
// are recorded on trace and answered with an error response.
func Dispatch(ctx context.Context, tools map[string]Tool, call ToolCall, trace *agenttrace.Trace) map[string]any {
	log := clog.FromContext(ctx).With("tool", call.Name).With("id", call.ID)
	tool, ok := tools[call.Name]
	if !ok {
		log.Warn("Model requested an unknown tool")
		err := fmt.Errorf("unknown tool: %q", call.Name)
		trace.BadToolCall(call.ID, call.Name, call.Args, err)
		return params.Error("%s", err)
	}
	log.Info("Executing tool call")
	return tool.Handler(ctx, call, trace)
}

// Param extracts a required argument. On failure the bad call is recorded on
// trace and the returned map is the response to send back.
func Param[T any](call ToolCall, trace *agenttrace.Trace, name string) (T, map[string]any) {
	v, err := params.Extract[T](call.Args, name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, err)
		return v, params.Error("%s", err)
	}
	return v, nil
}

// OptionalParam extracts an optional argument, defaulting to fallback.
func OptionalParam[T any](call ToolCall, name string, fallback T) (T, map[string]any) {
	v, err := params.ExtractOptional(call.Args, name, fallback)
	if err != nil {
		return v, params.Error("%s", err)
	}
	return v, nil
}

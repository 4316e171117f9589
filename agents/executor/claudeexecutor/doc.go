/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs a prompt against the Anthropic Messages API,
// serving tool calls until the model answers with text.
//
//	client := anthropic.NewClient(option.WithAPIKey(key))
//	exec, err := claudeexecutor.New(client, prompt,
//		claudeexecutor.WithModel("claude-sonnet-4-5"),
//		claudeexecutor.WithSystemInstructions(persona),
//	)
//	if err != nil {
//		return err
//	}
//	text, err := exec.Execute(ctx, request, tools)
//
// Rate limit and overload responses are retried with backoff. Everything else
// fails the execution. Each execution is recorded as an agenttrace.Trace and
// its token usage, tool calls and duration as OpenTelemetry metrics.
package claudeexecutor

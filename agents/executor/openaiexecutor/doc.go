/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor runs a prompt through OpenAI chat completions,
// serving tool calls until the model answers with text.
//
//	client := openai.NewClient(option.WithAPIKey(key))
//	exec, err := openaiexecutor.New(client, prompt,
//		openaiexecutor.WithModel("gpt-4o-mini-2024-07-18"),
//		openaiexecutor.WithSystemInstructions(persona),
//	)
//	if err != nil {
//		return err
//	}
//	text, err := exec.Execute(ctx, request, tools)
package openaiexecutor

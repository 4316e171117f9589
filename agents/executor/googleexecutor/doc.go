/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleexecutor runs a prompt against Gemini through a chat
// session, serving function calls until the model answers with text.
//
//	client, err := genai.NewClient(ctx, &genai.ClientConfig{
//		APIKey:  key,
//		Backend: genai.BackendGeminiAPI,
//	})
//	if err != nil {
//		return err
//	}
//	exec, err := googleexecutor.New(client, prompt,
//		googleexecutor.WithModel("gemini-2.5-pro"),
//		googleexecutor.WithSystemInstructions(persona),
//	)
//
// A malformed function call is answered with a request to try again and
// counts as a turn. Quota and overload errors are retried with backoff.
package googleexecutor

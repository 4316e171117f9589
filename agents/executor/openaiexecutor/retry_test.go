/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"testing"

	"github.com/openai/openai-go"
)

func TestIsRetryableOpenAIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "rate limited", err: &openai.Error{StatusCode: 429}, want: true},
		{name: "server error", err: &openai.Error{StatusCode: 500}, want: true},
		{name: "bad request", err: &openai.Error{StatusCode: 400}},
		{name: "unauthorized", err: &openai.Error{StatusCode: 401}},
		{name: "plain error", err: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableOpenAIError(tt.err); got != tt.want {
				t.Errorf("isRetryableOpenAIError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReasoningModel(t *testing.T) {
	for model, want := range map[string]bool{
		"o1":                     true,
		"o3-mini":                true,
		"o4-mini":                true,
		"gpt-4o-mini-2024-07-18": false,
		"omni":                   false,
		"o":                      false,
	} {
		if got := reasoningModel(model); got != want {
			t.Errorf("reasoningModel(%q) = %v, want %v", model, got, want)
		}
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"

	"chainguard.dev/casecrew/agents/executor/retry"
	"github.com/openai/openai-go"
)

// isRetryableOpenAIError accepts rate limit and transient server errors.
var isRetryableOpenAIError = retry.OnStatus(func(err error) (int, bool) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}, retry.TransientHTTPStatuses...)

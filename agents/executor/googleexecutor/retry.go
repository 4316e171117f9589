/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"slices"
	"strings"

	"chainguard.dev/casecrew/agents/executor/retry"
	"google.golang.org/genai"
)

var transientMarkers = []string{
	"RESOURCE_EXHAUSTED",
	"Resource exhausted",
	"rate limit",
	"quota exceeded",
	"Overloaded",
	"UNAVAILABLE",
	"Internal error",
}

// isRetryableGeminiError accepts quota, overload and transient server
// errors. Errors without a typed status are matched on their message.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return slices.Contains(retry.TransientHTTPStatuses, apiErr.Code)
	}
	msg := err.Error()
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

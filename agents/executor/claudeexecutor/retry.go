/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"

	"chainguard.dev/casecrew/agents/executor/retry"
	"github.com/anthropics/anthropic-sdk-go"
)

// isRetryableClaudeError accepts rate limit, overload and transient
// gateway errors.
var isRetryableClaudeError = retry.OnStatus(func(err error) (int, bool) {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}, retry.TransientHTTPStatuses...)

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package params extracts typed arguments from decoded tool calls and builds
// the error responses handlers send back to the model. It has no provider
// dependencies.
package params

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

// ToolProvider builds the tool set for a callbacks type. Providers compose
// by wrapping: Empty, then Research on top.
type ToolProvider[CB any] interface {
	Tools(cb CB) map[string]Tool
}

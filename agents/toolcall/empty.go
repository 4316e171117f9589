/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

// EmptyTools is the callbacks type at the bottom of every provider stack.
type EmptyTools struct{}

type emptyToolsProvider struct{}

var _ ToolProvider[EmptyTools] = emptyToolsProvider{}

// NewEmptyToolsProvider returns a provider with no tools.
func NewEmptyToolsProvider() ToolProvider[EmptyTools] {
	return emptyToolsProvider{}
}

func (emptyToolsProvider) Tools(EmptyTools) map[string]Tool {
	return map[string]Tool{}
}

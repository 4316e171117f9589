/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by request types that fill in a prompt template.
// Executors call Bind with their user prompt before every execution.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}

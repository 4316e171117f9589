/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"fmt"
	"strings"
)

// Executor produces a stage's artifact text from its inputs.
// Implementations return the complete text or an error; there is no
// partial output.
type Executor interface {
	Execute(ctx context.Context, inputs Inputs, root RootInputs) (string, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, inputs Inputs, root RootInputs) (string, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, inputs Inputs, root RootInputs) (string, error) {
	return f(ctx, inputs, root)
}

// Stage binds a Definition to the Executor that does its work.
type Stage struct {
	Definition
	Executor Executor
}

// Execute checks the stage's preconditions and runs its executor.
//
// Every artifact in DependsOn must be present in inputs, otherwise
// ErrMissingDependency. Every required capability must be in caps, otherwise
// ErrCapabilityUnavailable; in both cases the executor is not called. The
// executor only sees the artifacts the stage declares.
func (s Stage) Execute(ctx context.Context, inputs Inputs, root RootInputs, caps Capabilities) (string, error) {
	scoped := make(Inputs, len(s.DependsOn))
	for _, dep := range s.DependsOn {
		text, ok := inputs[dep]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingDependency, dep)
		}
		scoped[dep] = text
	}

	if missing := caps.Missing(s.Capabilities); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, string(m))
		}
		return "", fmt.Errorf("%w: %s", ErrCapabilityUnavailable, strings.Join(names, ", "))
	}

	if s.Executor == nil {
		return "", invalidf("stage %q has no executor", s.Name)
	}

	text, err := s.Executor.Execute(ctx, scoped, root)
	if err != nil {
		return "", classify(err)
	}
	return text, nil
}

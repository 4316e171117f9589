/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/casecrew/pipeline/artifact"
)

var (
	// ErrMissingDependency is returned when a stage is asked to run without
	// one of the artifacts it declares in DependsOn.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrInvalidPipeline is returned when the stage table cannot be ordered:
	// duplicate names, dangling or self dependencies, or a cycle.
	ErrInvalidPipeline = errors.New("invalid pipeline")

	// ErrCapabilityUnavailable is returned when a stage requires an external
	// capability the run was not configured with.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrStageFailed wraps any other error produced while executing a stage.
	ErrStageFailed = errors.New("execution failed")
)

// StageError reports which stage aborted a run and why.
// errors.Is on a StageError matches the underlying error kind.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPipeline, fmt.Sprintf(format, args...))
}

func cycleError(path []string) error {
	return invalidf("dependency cycle: %s", strings.Join(path, " -> "))
}

// classify makes sure err carries one of the known kinds, defaulting to
// ErrStageFailed.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrMissingDependency),
		errors.Is(err, ErrInvalidPipeline),
		errors.Is(err, ErrCapabilityUnavailable),
		errors.Is(err, ErrStageFailed),
		errors.Is(err, artifact.ErrWrite):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}
}

// outcome maps an error to the label used in metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingDependency):
		return "missing_dependency"
	case errors.Is(err, ErrInvalidPipeline):
		return "invalid_pipeline"
	case errors.Is(err, ErrCapabilityUnavailable):
		return "capability_unavailable"
	case errors.Is(err, artifact.ErrWrite):
		return "write_error"
	default:
		return "failed"
	}
}

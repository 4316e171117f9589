/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"time"

	"chainguard.dev/casecrew/pipeline/artifact"
)

// Status is the lifecycle state of a Run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is the in-memory record of one pipeline execution.
type Run struct {
	ID     string       `json:"id"`
	Stages []Definition `json:"stages"`
	Root   RootInputs   `json:"root"`

	// Artifacts holds what each stage produced so far, keyed by stage name.
	Artifacts map[string]artifact.Artifact `json:"artifacts"`

	Status      Status    `json:"status"`
	FailedStage string    `json:"failed_stage,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
}

// Artifact returns the artifact produced by stage in this run.
func (r *Run) Artifact(stage string) (artifact.Artifact, bool) {
	a, ok := r.Artifacts[stage]
	return a, ok
}

// Journal records run lifecycle events alongside the artifacts.
type Journal interface {
	// StartRun records a new run and its root inputs.
	StartRun(ctx context.Context, runID string, root RootInputs) error

	// FinishRun records the terminal status of a run. failedStage and runErr
	// are empty for successful runs.
	FinishRun(ctx context.Context, runID string, status Status, failedStage string, runErr error) error
}

// ErrRunNotFound is returned by RunReader for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is what a Journal knows about one run.
type RunRecord struct {
	ID          string     `json:"id"`
	Root        RootInputs `json:"root"`
	Status      Status     `json:"status"`
	FailedStage string     `json:"failed_stage,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RunReader reads back what a Journal recorded.
type RunReader interface {
	// GetRun returns the record of runID, or an error wrapping ErrRunNotFound.
	GetRun(ctx context.Context, runID string) (RunRecord, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}

// RunJournal is a Journal whose records can be read back.
type RunJournal interface {
	Journal
	RunReader
}

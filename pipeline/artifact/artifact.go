/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package artifact defines the text outputs stages exchange and the stores
// that hold them.
//
// A Store keeps one artifact per stage for one run. Put replaces any earlier
// artifact for the stage as a whole; a reader never sees a partial write.
// Implementations live in the filestore, sqlstore and gcsstore packages;
// Memory backs tests and ephemeral runs.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrNotFound is returned when no artifact has been produced for a stage.
	ErrNotFound = errors.New("artifact not found")

	// ErrWrite is returned when an artifact could not be durably persisted.
	ErrWrite = errors.New("artifact write failed")
)

// Artifact is the immutable text output of a completed stage.
type Artifact struct {
	// Stage is the name of the stage that produced the artifact.
	Stage string `json:"stage" yaml:"stage"`

	// Text is the raw output, UTF-8 with no framing.
	Text string `json:"text" yaml:"text"`

	// CreatedAt is when the artifact was committed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store is durable key to text storage for stage outputs, keyed by stage name.
type Store interface {
	// Put persists text under stage, replacing any prior value.
	// Failures wrap ErrWrite.
	Put(ctx context.Context, stage, text string) error

	// Get returns the last text stored for stage, or ErrNotFound.
	Get(ctx context.Context, stage string) (Artifact, error)

	// List returns every stored artifact ordered by stage name.
	List(ctx context.Context) ([]Artifact, error)
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateName checks that name can be used as a stage key or file stem.
func ValidateName(name string) error {
	if !validName.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name %q: must match %s", name, validName)
	}
	return nil
}

// WriteError wraps err so that errors.Is(result, ErrWrite) holds.
func WriteError(stage string, err error) error {
	return fmt.Errorf("%w: stage %q: %w", ErrWrite, stage, err)
}

// NotFound returns ErrNotFound annotated with the stage name.
func NotFound(stage string) error {
	return fmt.Errorf("%w: stage %q", ErrNotFound, stage)
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package filestore implements artifact.Store on the local filesystem.
//
// Each stage's artifact is a plain UTF-8 file named <stage>.txt under the
// store directory. Writes go to a temp file that is renamed into place, so a
// crash mid-write never leaves a truncated artifact behind.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"chainguard.dev/casecrew/pipeline/artifact"
)

const ext = ".txt"

// Store is a directory-backed artifact.Store.
type Store struct {
	dir string
}

var _ artifact.Store = (*Store)(nil)

// New returns a store rooted at dir. The directory is created lazily on the
// first Put.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// ForRun returns the store for a single run laid out as <root>/<runID>/stages.
func ForRun(root, runID string) (*Store, error) {
	if err := artifact.ValidateName(runID); err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	return New(filepath.Join(root, runID, "stages")), nil
}

// Dir returns the directory holding the artifacts.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(stage string) string {
	return filepath.Join(s.dir, stage+ext)
}

// Put implements artifact.Store.
func (s *Store) Put(_ context.Context, stage, text string) error {
	if err := artifact.ValidateName(stage); err != nil {
		return artifact.WriteError(stage, err)
	}
	if err := artifact.WriteFileAtomic(s.path(stage), []byte(text)); err != nil {
		return artifact.WriteError(stage, err)
	}
	return nil
}

// Get implements artifact.Store.
func (s *Store) Get(_ context.Context, stage string) (artifact.Artifact, error) {
	if err := artifact.ValidateName(stage); err != nil {
		return artifact.Artifact{}, artifact.NotFound(stage)
	}
	path := s.path(stage)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return artifact.Artifact{}, artifact.NotFound(stage)
	} else if err != nil {
		return artifact.Artifact{}, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return artifact.Artifact{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return artifact.Artifact{
		Stage:     stage,
		Text:      string(data),
		CreatedAt: info.ModTime().UTC(),
	}, nil
}

// List implements artifact.Store.
func (s *Store) List(ctx context.Context) ([]artifact.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var out []artifact.Artifact
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		a, err := s.Get(ctx, strings.TrimSuffix(name, ext))
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b artifact.Artifact) int { return strings.Compare(a.Stage, b.Stage) })
	return out, nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gcsstore implements artifact.Store on Google Cloud Storage.
//
// Artifacts are stored as objects named <prefix>/<runID>/stages/<stage>.txt.
// An object only becomes visible when its writer is closed, which gives the
// same replace-or-nothing behavior as the file store.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"chainguard.dev/casecrew/pipeline/artifact"
	"cloud.google.com/go/storage"
	"github.com/chainguard-dev/clog"
	"google.golang.org/api/iterator"
)

const contentType = "text/plain; charset=utf-8"

// Store is a GCS-backed artifact.Store for one run.
type Store struct {
	bucket *storage.BucketHandle
	dir    string
}

var _ artifact.Store = (*Store)(nil)

// New returns the store for runID inside bucket, under prefix.
func New(client *storage.Client, bucket, prefix, runID string) (*Store, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if err := artifact.ValidateName(runID); err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	return &Store{
		bucket: client.Bucket(bucket),
		dir:    runDir(prefix, runID),
	}, nil
}

func runDir(prefix, runID string) string {
	return path.Join(strings.Trim(prefix, "/"), runID, "stages")
}

func (s *Store) objectName(stage string) string {
	return path.Join(s.dir, stage+".txt")
}

// Put implements artifact.Store.
func (s *Store) Put(ctx context.Context, stage, text string) error {
	if err := artifact.ValidateName(stage); err != nil {
		return artifact.WriteError(stage, err)
	}
	name := s.objectName(stage)
	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.WriteString(w, text); err != nil {
		w.Close()
		return artifact.WriteError(stage, err)
	}
	if err := w.Close(); err != nil {
		return artifact.WriteError(stage, err)
	}
	clog.FromContext(ctx).With("object", name).Debug("Wrote artifact object")
	return nil
}

// Get implements artifact.Store.
func (s *Store) Get(ctx context.Context, stage string) (artifact.Artifact, error) {
	if err := artifact.ValidateName(stage); err != nil {
		return artifact.Artifact{}, artifact.NotFound(stage)
	}
	name := s.objectName(stage)
	r, err := s.bucket.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return artifact.Artifact{}, artifact.NotFound(stage)
	} else if err != nil {
		return artifact.Artifact{}, fmt.Errorf("opening %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return artifact.Artifact{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return artifact.Artifact{
		Stage:     stage,
		Text:      string(data),
		CreatedAt: r.Attrs.LastModified.UTC(),
	}, nil
}

// List implements artifact.Store.
func (s *Store) List(ctx context.Context) ([]artifact.Artifact, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.dir + "/"})
	var out []artifact.Artifact
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("listing %s: %w", s.dir, err)
		}
		stage, ok := strings.CutSuffix(path.Base(attrs.Name), ".txt")
		if !ok || path.Dir(attrs.Name) != s.dir {
			continue
		}
		a, err := s.Get(ctx, stage)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b artifact.Artifact) int { return strings.Compare(a.Stage, b.Stage) })
	return out, nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package filestore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
)

// RunFile is the name of the journal entry kept in each run directory.
const RunFile = "run.json"

// Journal is a pipeline.RunJournal that keeps one RunFile per run under
// <root>/<runID>/.
type Journal struct {
	root string
	now  func() time.Time

	// mu serializes read-modify-write in FinishRun.
	mu sync.Mutex
}

var _ pipeline.RunJournal = (*Journal)(nil)

// NewJournal returns a journal rooted at root.
func NewJournal(root string) *Journal {
	return &Journal{root: root, now: time.Now}
}

func (j *Journal) path(runID string) string {
	return filepath.Join(j.root, runID, RunFile)
}

func (j *Journal) write(rec pipeline.RunRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run %s: %w", rec.ID, err)
	}
	return artifact.WriteFileAtomic(j.path(rec.ID), data)
}

// StartRun implements pipeline.Journal.
func (j *Journal) StartRun(_ context.Context, runID string, root pipeline.RootInputs) error {
	if err := artifact.ValidateName(runID); err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	now := j.now().UTC()
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.write(pipeline.RunRecord{
		ID:        runID,
		Root:      root,
		Status:    pipeline.StatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// FinishRun implements pipeline.Journal.
func (j *Journal) FinishRun(ctx context.Context, runID string, status pipeline.Status, failedStage string, runErr error) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, err := j.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	rec.Status, rec.FailedStage, rec.Error = status, failedStage, ""
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	rec.UpdatedAt = j.now().UTC()
	return j.write(rec)
}

// GetRun implements pipeline.RunReader.
func (j *Journal) GetRun(_ context.Context, runID string) (pipeline.RunRecord, error) {
	if err := artifact.ValidateName(runID); err != nil {
		return pipeline.RunRecord{}, fmt.Errorf("%w: %s", pipeline.ErrRunNotFound, runID)
	}
	path := j.path(runID)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return pipeline.RunRecord{}, fmt.Errorf("%w: %s", pipeline.ErrRunNotFound, runID)
	} else if err != nil {
		return pipeline.RunRecord{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec pipeline.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return pipeline.RunRecord{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return rec, nil
}

// ListRuns implements pipeline.RunReader. A non-positive limit returns every
// run.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]pipeline.RunRecord, error) {
	entries, err := os.ReadDir(j.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing %s: %w", j.root, err)
	}

	var out []pipeline.RunRecord
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		rec, err := j.GetRun(ctx, e.Name())
		if errors.Is(err, pipeline.ErrRunNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b pipeline.RunRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casecrew.db")
	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	db, _ := openTest(t)
	s := db.Run("run-1")

	_, err := s.Get(ctx, "research")
	if !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	require.NoError(t, s.Put(ctx, "research", "one"))
	require.NoError(t, s.Put(ctx, "research", "two"))
	got, err := s.Get(ctx, "research")
	require.NoError(t, err)
	if got.Text != "two" {
		t.Errorf("Get() = %q, want last Put %q", got.Text, "two")
	}

	// Other runs don't see it.
	if _, err := db.Run("run-2").Get(ctx, "research"); !errors.Is(err, artifact.ErrNotFound) {
		t.Errorf("Get() from another run error = %v, want ErrNotFound", err)
	}
}

func TestStoreDurable(t *testing.T) {
	ctx := context.Background()
	db, path := openTest(t)
	require.NoError(t, db.Run("r").Put(ctx, "solve", "the answer"))
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Run("r").Get(ctx, "solve")
	require.NoError(t, err)
	if got.Text != "the answer" {
		t.Errorf("Get() after reopen = %q", got.Text)
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	db, _ := openTest(t)
	s := db.Run("r")
	for _, stage := range []string{"solve", "frame", "review"} {
		require.NoError(t, s.Put(ctx, stage, stage+" text"))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	var stages []string
	for _, a := range list {
		stages = append(stages, a.Stage)
	}
	if diff := cmp.Diff([]string{"frame", "review", "solve"}, stages); diff != "" {
		t.Errorf("List() (-want +got):\n%s", diff)
	}
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	db, _ := openTest(t)
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	db.now = func() time.Time { return now }

	root := pipeline.RootInputs{CaseStudyDetails: "Launch a subscription box for left-handed people", Context: "B2C startup, pre-seed"}
	require.NoError(t, db.StartRun(ctx, "run-1", root))

	got, err := db.GetRun(ctx, "run-1")
	require.NoError(t, err)
	want := pipeline.RunRecord{ID: "run-1", Root: root, Status: pipeline.StatusRunning, CreatedAt: now, UpdatedAt: now}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetRun() (-want +got):\n%s", diff)
	}

	later := now.Add(time.Minute)
	db.now = func() time.Time { return later }
	require.NoError(t, db.FinishRun(ctx, "run-1", pipeline.StatusFailed, "frame", errors.New("boom")))

	got, err = db.GetRun(ctx, "run-1")
	require.NoError(t, err)
	want.Status, want.FailedStage, want.Error, want.UpdatedAt = pipeline.StatusFailed, "frame", "boom", later
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetRun() after finish (-want +got):\n%s", diff)
	}

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Errorf("ListRuns() = %+v", runs)
	}

	if _, err := db.GetRun(ctx, "missing"); !errors.Is(err, pipeline.ErrRunNotFound) {
		t.Errorf("GetRun(missing) error = %v, want ErrRunNotFound", err)
	}
	if err := db.FinishRun(ctx, "missing", pipeline.StatusSucceeded, "", nil); !errors.Is(err, pipeline.ErrRunNotFound) {
		t.Errorf("FinishRun(missing) error = %v, want ErrRunNotFound", err)
	}
}

func TestRunnerWithSQLite(t *testing.T) {
	ctx := context.Background()
	db, _ := openTest(t)

	echo := pipeline.ExecutorFunc(func(_ context.Context, in pipeline.Inputs, root pipeline.RootInputs) (string, error) {
		return root.CaseStudyDetails + "+" + in["a_out"], nil
	})
	stages := []pipeline.Stage{
		{Definition: pipeline.Definition{Name: "a", Output: "a_out"}, Executor: echo},
		{Definition: pipeline.Definition{Name: "b", Output: "b_out", DependsOn: []string{"a_out"}}, Executor: echo},
	}

	r, err := pipeline.NewRunner(pipeline.WithRunID("run-x"), pipeline.WithStore(db.Run("run-x")), pipeline.WithJournal(db))
	require.NoError(t, err)
	_, err = r.Run(ctx, stages, pipeline.RootInputs{CaseStudyDetails: "d"})
	require.NoError(t, err)

	rec, err := db.GetRun(ctx, "run-x")
	require.NoError(t, err)
	if rec.Status != pipeline.StatusSucceeded {
		t.Errorf("run status = %q, want succeeded", rec.Status)
	}
	b, err := db.Run("run-x").Get(ctx, "b")
	require.NoError(t, err)
	if b.Text != "d+d+" {
		t.Errorf("b = %q, want %q", b.Text, "d+d+")
	}
}

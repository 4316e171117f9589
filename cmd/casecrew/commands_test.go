/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"chainguard.dev/casecrew/pipeline/artifact/filestore"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/stretchr/testify/require"
)

func TestWriteStages(t *testing.T) {
	defs, err := pipeline.Plan(casestudy.Definitions(casestudy.DefaultSpecs()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeStages(&buf, defs))
	out := buf.String()

	order := []string{"research_report", "problem_statement", "reviewed_problem_statement", "solution"}
	last := -1
	for _, output := range order {
		i := strings.Index(out, "| "+output)
		require.Greater(t, i, last, "%s listed out of order in:\n%s", output, out)
		last = i
	}
	require.Contains(t, out, "generate, search, scrape")
	require.Contains(t, out, "Depends On")
}

func TestStagesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stages:
  - name: research
  - name: frame
  - name: review
  - name: solve
    persist: false
`), 0o600))
	t.Setenv("STORE", "file")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"stages", "--pipeline", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		rootFlags.pipeline = ""
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	out := buf.String()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "| solution") {
			require.Contains(t, line, "| no", "solve persistence was overridden")
		}
	}
	require.Contains(t, out, "| solve")
}

func TestWriteRun(t *testing.T) {
	out := t.TempDir()
	svc, err := casestudy.NewService(casestudy.Config{}, casestudy.WithOutputDir(out))
	require.NoError(t, err)

	run := &pipeline.Run{
		ID:          "run-1",
		Stages:      svc.Definitions(),
		Status:      pipeline.StatusFailed,
		FailedStage: casestudy.StageReview,
		Artifacts: map[string]artifact.Artifact{
			casestudy.StageResearch: {Stage: casestudy.StageResearch, Text: "report"},
			casestudy.StageFrame:    {Stage: casestudy.StageFrame, Text: "statement"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRun(&buf, svc, run))
	got := buf.String()

	require.Contains(t, got, "Run:    run-1")
	require.Contains(t, got, "Status: failed")
	require.Contains(t, got, "Failed: review")
	for _, line := range strings.Split(got, "\n") {
		switch {
		case strings.Contains(line, "| research"):
			require.Contains(t, line, "ready")
			require.Contains(t, line, "6")
		case strings.Contains(line, "| review"), strings.Contains(line, "| solve"):
			require.Contains(t, line, "pending")
		}
	}
}

func TestWriteViews(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	views := []present.View{{
		Stage:     "research",
		Title:     "Research Report",
		State:     present.StateReady,
		Text:      "report",
		CreatedAt: created,
	}, {
		Stage: "frame",
		Title: "Problem Statement",
		State: present.StatePending,
	}}

	var buf bytes.Buffer
	require.NoError(t, writeViews(&buf, views))
	require.Contains(t, buf.String(), "2026-03-01 12:30:00")
	require.Contains(t, buf.String(), "pending")
}

func TestWriteView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeView(&buf, present.View{Title: "Solution", State: present.StatePending}))
	require.Equal(t, "Solution: not produced yet\n", buf.String())

	buf.Reset()
	require.NoError(t, writeView(&buf, present.View{Title: "Solution", State: present.StateReady, Text: "Do X."}))
	require.Equal(t, "Do X.\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteRunReportsWriteErrors(t *testing.T) {
	svc, err := casestudy.NewService(casestudy.Config{}, casestudy.WithOutputDir(t.TempDir()))
	require.NoError(t, err)
	run := &pipeline.Run{ID: "run-1", Stages: svc.Definitions(), Status: pipeline.StatusSucceeded}
	require.ErrorContains(t, writeRun(failingWriter{}, svc, run), "disk full")
	require.ErrorContains(t, writeRecord(failingWriter{}, pipeline.RunRecord{ID: "run-1"}, nil), "disk full")
}

// execute runs the CLI with args against a file store under dir.
func execute(t *testing.T, dir string, args ...string) string {
	t.Helper()
	t.Setenv("STORE", "file")
	t.Setenv("OUTPUT_DIR", dir)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return buf.String()
}

func TestShowCommandReportsJournaledFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := filestore.ForRun(dir, "run-1")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, casestudy.StageResearch, "report"))
	j := filestore.NewJournal(dir)
	require.NoError(t, j.StartRun(ctx, "run-1", pipeline.RootInputs{CaseStudyDetails: "d"}))
	require.NoError(t, j.FinishRun(ctx, "run-1", pipeline.StatusFailed, casestudy.StageFrame, errors.New("capability unavailable")))

	out := execute(t, dir, "show", "run-1")
	require.Contains(t, out, "Status: failed")
	require.Contains(t, out, "Failed: frame")
	require.Contains(t, out, "Error:  capability unavailable")
	require.Contains(t, out, "| research")

	// Artifacts without a journal entry.
	store, err = filestore.ForRun(dir, "run-2")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, casestudy.StageResearch, "report"))
	out = execute(t, dir, "show", "run-2")
	require.Contains(t, out, "Status: unknown")
	require.NotContains(t, out, "Failed:")
}

func TestRunsCommand(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	j := filestore.NewJournal(dir)
	require.NoError(t, j.StartRun(ctx, "run-a", pipeline.RootInputs{CaseStudyDetails: "a"}))
	require.NoError(t, j.FinishRun(ctx, "run-a", pipeline.StatusFailed, casestudy.StageReview, errors.New("boom")))

	out := execute(t, dir, "runs", "--limit", "5")
	var found bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "| run-a") {
			found = true
			require.Contains(t, line, "failed")
			require.Contains(t, line, "review")
		}
	}
	require.True(t, found, "run-a not listed in:\n%s", out)
}

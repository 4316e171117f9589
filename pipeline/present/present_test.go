/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package present_test

import (
	"context"
	"errors"
	"testing"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var defs = []pipeline.Definition{
	{Name: "research", Output: "research_report"},
	{Name: "frame", Output: "problem_statement", DependsOn: []string{"research_report"}},
	{Name: "review", Output: "reviewed_problem_statement", DependsOn: []string{"problem_statement"}, Persist: true},
	{Name: "solve", Output: "solution", DependsOn: []string{"reviewed_problem_statement"}, Persist: true},
}

type brokenStore struct{ artifact.Store }

func (brokenStore) Get(context.Context, string) (artifact.Artifact, error) {
	return artifact.Artifact{}, errors.New("connection reset")
}

func TestRenderPending(t *testing.T) {
	a := present.New(artifact.NewMemory(), defs)
	v, err := a.Render(context.Background(), "solve")
	if err != nil {
		t.Fatalf("Render() error = %v, want nil for a missing artifact", err)
	}
	want := present.View{Stage: "solve", Output: "solution", Title: "Solution", State: present.StatePending, Persisted: true}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Render() (-want +got):\n%s", diff)
	}
	if !v.Pending() {
		t.Error("Pending() = false")
	}
}

func TestRenderReady(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemory()
	require.NoError(t, store.Put(ctx, "review", "Reviewed."))

	v, err := present.New(store, defs).Render(ctx, "review")
	require.NoError(t, err)
	want := present.View{Stage: "review", Output: "reviewed_problem_statement", Title: "Reviewed Problem Statement", State: present.StateReady, Text: "Reviewed.", Persisted: true}
	if diff := cmp.Diff(want, v, cmpopts.IgnoreFields(present.View{}, "CreatedAt")); diff != "" {
		t.Errorf("Render() (-want +got):\n%s", diff)
	}
	if v.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestRenderSystemError(t *testing.T) {
	_, err := present.New(brokenStore{}, defs).Render(context.Background(), "review")
	if err == nil || errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("Render() error = %v, want a system error", err)
	}
}

func TestRenderUnknownStage(t *testing.T) {
	_, err := present.New(artifact.NewMemory(), defs).Render(context.Background(), "nope")
	if !errors.Is(err, present.ErrUnknownStage) {
		t.Fatalf("Render() error = %v, want ErrUnknownStage", err)
	}
}

func TestRenderAll(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemory()
	require.NoError(t, store.Put(ctx, "research", "r"))

	views, err := present.New(store, defs).RenderAll(ctx)
	require.NoError(t, err)
	var states []present.State
	for _, v := range views {
		states = append(states, v.State)
	}
	want := []present.State{present.StateReady, present.StatePending, present.StatePending, present.StatePending}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Errorf("RenderAll() states (-want +got):\n%s", diff)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemory()
	a := present.New(store, defs)

	if _, err := a.Export(ctx, "solve"); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("Export() error = %v, want ErrNotFound", err)
	}

	require.NoError(t, store.Put(ctx, "solve", "Do the thing.\n"))
	got, err := a.Export(ctx, "solve")
	require.NoError(t, err)
	want := present.Download{Filename: "solution.txt", ContentType: "text/plain; charset=utf-8", Data: []byte("Do the thing.\n")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Export() (-want +got):\n%s", diff)
	}
}

func TestTitle(t *testing.T) {
	for in, want := range map[string]string{
		"research_report":            "Research Report",
		"reviewed_problem_statement": "Reviewed Problem Statement",
		"solution":                   "Solution",
	} {
		if got := present.Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

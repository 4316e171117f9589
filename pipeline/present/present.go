/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package present turns stored artifacts into things a UI can show or offer
// for download.
//
// Render never fails just because a stage has not produced its artifact yet;
// it returns a View in the Pending state instead. Export, on the other hand,
// reports a missing artifact as artifact.ErrNotFound since there is nothing
// to download.
package present

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownStage is returned for stage names the adapter was not built with.
var ErrUnknownStage = errors.New("unknown stage")

// ContentType of exported artifacts.
const ContentType = "text/plain; charset=utf-8"

// State says whether a stage's artifact exists yet.
type State string

const (
	// StatePending means the stage has not produced its artifact.
	StatePending State = "pending"
	// StateReady means Text holds the artifact.
	StateReady State = "ready"
)

// View is the display form of one stage's artifact.
type View struct {
	Stage     string    `json:"stage"`
	Output    string    `json:"output"`
	Title     string    `json:"title"`
	State     State     `json:"state"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	Persisted bool      `json:"persisted"`
}

// Pending reports whether the artifact has not been produced.
func (v View) Pending() bool { return v.State == StatePending }

// Download is an artifact packaged for export.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Adapter reads artifacts for a fixed set of stages from a store.
type Adapter struct {
	store artifact.Store
	defs  []pipeline.Definition
}

// New returns an adapter over store for defs. defs are shown in the order
// given, which should be the planned execution order.
func New(store artifact.Store, defs []pipeline.Definition) *Adapter {
	return &Adapter{store: store, defs: defs}
}

// Definitions returns the stages the adapter knows about.
func (a *Adapter) Definitions() []pipeline.Definition {
	return a.defs
}

func (a *Adapter) lookup(stage string) (pipeline.Definition, error) {
	for _, d := range a.defs {
		if d.Name == stage {
			return d, nil
		}
	}
	return pipeline.Definition{}, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
}

// Title turns an artifact name like reviewed_problem_statement into
// "Reviewed Problem Statement".
func Title(output string) string {
	// Casers carry state and can't be shared across goroutines.
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(output))
}

// Render returns the view of stage. A stage without an artifact renders as
// Pending with a nil error; other store failures are returned.
func (a *Adapter) Render(ctx context.Context, stage string) (View, error) {
	d, err := a.lookup(stage)
	if err != nil {
		return View{}, err
	}
	v := View{
		Stage:     d.Name,
		Output:    d.Output,
		Title:     Title(d.Output),
		State:     StatePending,
		Persisted: d.Persist,
	}

	got, err := a.store.Get(ctx, d.Name)
	switch {
	case errors.Is(err, artifact.ErrNotFound):
		return v, nil
	case err != nil:
		return View{}, fmt.Errorf("reading artifact for %s: %w", d.Name, err)
	}
	v.State = StateReady
	v.Text = got.Text
	v.CreatedAt = got.CreatedAt
	return v, nil
}

// RenderAll renders every stage in order.
func (a *Adapter) RenderAll(ctx context.Context) ([]View, error) {
	out := make([]View, 0, len(a.defs))
	for _, d := range a.defs {
		v, err := a.Render(ctx, d.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Export packages stage's artifact as a <Output>.txt download.
func (a *Adapter) Export(ctx context.Context, stage string) (Download, error) {
	d, err := a.lookup(stage)
	if err != nil {
		return Download{}, err
	}
	got, err := a.store.Get(ctx, d.Name)
	if err != nil {
		return Download{}, err
	}
	return Download{
		Filename:    artifact.FileName(d.Output),
		ContentType: ContentType,
		Data:        []byte(got.Text),
	}, nil
}

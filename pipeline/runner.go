/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/casecrew/pipeline/artifact"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
)

// Option is a functional option for configuring the Runner.
type Option func(*Runner) error

// WithStore sets the store each stage's artifact is committed to.
func WithStore(s artifact.Store) Option {
	return func(r *Runner) error {
		if s == nil {
			return errors.New("store cannot be nil")
		}
		r.store = s
		return nil
	}
}

// WithPublisher sets where artifacts of stages marked Persist are written.
func WithPublisher(p artifact.Publisher) Option {
	return func(r *Runner) error {
		r.publisher = p
		return nil
	}
}

// WithCapabilities sets the capabilities available to stages.
func WithCapabilities(caps Capabilities) Option {
	return func(r *Runner) error {
		r.caps = caps
		return nil
	}
}

// WithJournal records run start and finish in j.
func WithJournal(j Journal) Option {
	return func(r *Runner) error {
		r.journal = j
		return nil
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		r.now = now
		return nil
	}
}

// WithRunID fixes the run ID instead of generating a UUID.
func WithRunID(id string) Option {
	return func(r *Runner) error {
		if err := artifact.ValidateName(id); err != nil {
			return fmt.Errorf("run id: %w", err)
		}
		r.runID = id
		return nil
	}
}

// Runner executes stages strictly one at a time in dependency order and
// stops at the first failure.
type Runner struct {
	store     artifact.Store
	publisher artifact.Publisher
	caps      Capabilities
	journal   Journal
	now       func() time.Time
	runID     string
}

// NewRunner creates a Runner. Without WithStore artifacts are only kept in
// memory.
func NewRunner(opts ...Option) (*Runner, error) {
	r := &Runner{
		store: artifact.NewMemory(),
		caps:  Capabilities{},
		now:   time.Now,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return r, nil
}

// Store returns the store artifacts are committed to.
func (r *Runner) Store() artifact.Store {
	return r.store
}

// Run plans stages and executes them in order.
//
// An invalid stage table fails with ErrInvalidPipeline before anything runs.
// Otherwise each stage's output is committed to the store (and published when
// the stage is marked Persist) before the next stage starts. The first
// failure aborts the run with a *StageError; artifacts already committed stay
// in the store. The returned Run is non-nil in every case.
func (r *Runner) Run(ctx context.Context, stages []Stage, root RootInputs) (*Run, error) {
	runID := r.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	run := &Run{
		ID:        runID,
		Root:      root,
		Artifacts: make(map[string]artifact.Artifact, len(stages)),
		Status:    StatusRunning,
		StartedAt: r.now(),
	}
	log := clog.FromContext(ctx).With("run_id", runID)
	ctx = clog.WithLogger(ctx, log)

	order, err := r.plan(stages)
	if err != nil {
		run.Status = StatusFailed
		run.FinishedAt = r.now()
		runsTotal.WithLabelValues(outcome(err)).Inc()
		log.With("error", err).Error("Rejected pipeline")
		return run, err
	}
	for _, s := range order {
		run.Stages = append(run.Stages, s.Definition)
	}

	if r.journal != nil {
		if err := r.journal.StartRun(ctx, runID, root); err != nil {
			return r.finish(ctx, run, "", fmt.Errorf("recording run start: %w", err))
		}
	}

	log.With("stages", len(order)).Info("Starting pipeline run")

	// Upstream text keyed by artifact name.
	outputs := make(Inputs, len(order))
	for _, s := range order {
		if err := r.runStage(ctx, run, s, outputs); err != nil {
			return r.finish(ctx, run, s.Name, &StageError{Stage: s.Name, Err: err})
		}
	}
	return r.finish(ctx, run, "", nil)
}

func (r *Runner) plan(stages []Stage) ([]Stage, error) {
	defs := make([]Definition, len(stages))
	byName := make(map[string]Stage, len(stages))
	for i, s := range stages {
		defs[i] = s.Definition
		byName[s.Name] = s
	}
	planned, err := Plan(defs)
	if err != nil {
		return nil, err
	}
	order := make([]Stage, 0, len(planned))
	for _, d := range planned {
		s := byName[d.Name]
		if s.Executor == nil {
			return nil, invalidf("stage %q has no executor", d.Name)
		}
		order = append(order, s)
	}
	return order, nil
}

func (r *Runner) runStage(ctx context.Context, run *Run, s Stage, outputs Inputs) (err error) {
	log := clog.FromContext(ctx).With("stage", s.Name)
	start := r.now()
	defer func() {
		d := r.now().Sub(start)
		stageExecutions.WithLabelValues(s.Name, outcome(err)).Inc()
		stageDuration.WithLabelValues(s.Name).Observe(d.Seconds())
		if err != nil {
			log.With("duration", d).With("error", err).Error("Stage failed")
		} else {
			log.With("duration", d).Info("Stage committed")
		}
	}()

	inputs := make(Inputs, len(s.DependsOn))
	for _, dep := range s.DependsOn {
		text, ok := outputs[dep]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingDependency, dep)
		}
		inputs[dep] = text
	}

	log.With("depends_on", s.DependsOn).Info("Starting stage")
	text, err := s.Execute(ctx, inputs, run.Root, r.caps)
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, s.Name, text); err != nil {
		return classify(err)
	}
	outputs[s.Output] = text
	run.Artifacts[s.Name] = artifact.Artifact{Stage: s.Name, Text: text, CreatedAt: r.now()}

	if s.Persist && r.publisher != nil {
		if err := r.publisher.Publish(ctx, s.Output, text); err != nil {
			return classify(err)
		}
	}
	return nil
}

func (r *Runner) finish(ctx context.Context, run *Run, failedStage string, err error) (*Run, error) {
	log := clog.FromContext(ctx)
	run.FinishedAt = r.now()
	if err != nil {
		run.Status = StatusFailed
		run.FailedStage = failedStage
	} else {
		run.Status = StatusSucceeded
	}
	runsTotal.WithLabelValues(outcome(err)).Inc()

	if r.journal != nil {
		if jerr := r.journal.FinishRun(ctx, run.ID, run.Status, failedStage, err); jerr != nil {
			log.With("error", jerr).Warn("Failed to record run status")
		}
	}

	if err != nil {
		log.With("failed_stage", failedStage).With("error", err).Error("Pipeline run failed")
		return run, err
	}
	log.With("duration", run.FinishedAt.Sub(run.StartedAt)).Info("Pipeline run succeeded")
	return run, nil
}

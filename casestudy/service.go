/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"chainguard.dev/casecrew/pipeline/artifact/filestore"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/google/uuid"
)

// StoreFactory returns the artifact store for one run.
type StoreFactory func(ctx context.Context, runID string) (artifact.Store, error)

// Service runs case study pipelines and reads back their artifacts.
type Service struct {
	specs     []Spec
	defs      []pipeline.Definition
	cfg       Config
	outputDir string
	stores    StoreFactory
	journal   pipeline.RunJournal
}

// Option configures a Service.
type Option func(*Service) error

// WithSpecs replaces DefaultSpecs.
func WithSpecs(specs []Spec) Option {
	return func(s *Service) error {
		if len(specs) == 0 {
			return errors.New("specs cannot be empty")
		}
		s.specs = specs
		return nil
	}
}

// WithOutputDir sets where persisted artifacts (and, by default, the file
// store) live. Defaults to "output".
func WithOutputDir(dir string) Option {
	return func(s *Service) error {
		if dir == "" {
			return errors.New("output dir cannot be empty")
		}
		s.outputDir = dir
		return nil
	}
}

// WithStoreFactory overrides the per-run file store.
func WithStoreFactory(f StoreFactory) Option {
	return func(s *Service) error {
		if f == nil {
			return errors.New("store factory cannot be nil")
		}
		s.stores = f
		return nil
	}
}

// WithJournal records run lifecycle events in j. Defaults to a
// filestore.Journal under the output dir.
func WithJournal(j pipeline.RunJournal) Option {
	return func(s *Service) error {
		if j == nil {
			return errors.New("journal cannot be nil")
		}
		s.journal = j
		return nil
	}
}

// NewService creates a Service for cfg. The stage table is validated here.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{
		specs:     DefaultSpecs(),
		cfg:       cfg,
		outputDir: "output",
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	if s.stores == nil {
		s.stores = func(_ context.Context, runID string) (artifact.Store, error) {
			return filestore.ForRun(s.outputDir, runID)
		}
	}
	if s.journal == nil {
		s.journal = filestore.NewJournal(s.outputDir)
	}
	defs, err := pipeline.Plan(Definitions(s.specs))
	if err != nil {
		return nil, err
	}
	if _, err := Stages(s.specs, cfg, ""); err != nil {
		return nil, err
	}
	s.defs = defs
	return s, nil
}

// Definitions returns the stages in execution order.
func (s *Service) Definitions() []pipeline.Definition {
	return s.defs
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// PublishedPath returns the file a persisted output of runID is written to.
func (s *Service) PublishedPath(runID, output string) string {
	return filepath.Join(s.outputDir, runID, artifact.FileName(output))
}

// Run executes the pipeline over root. model overrides the configured model
// when non-empty. The returned Run is non-nil whenever the run got an ID.
func (s *Service) Run(ctx context.Context, root pipeline.RootInputs, model string) (*pipeline.Run, error) {
	cfg := s.cfg
	if model != "" {
		cfg.Model = model
	}
	runID := uuid.NewString()

	store, err := s.stores(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("opening store for run %s: %w", runID, err)
	}
	stages, err := Stages(s.specs, cfg, runID)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithRunID(runID),
		pipeline.WithStore(store),
		pipeline.WithPublisher(artifact.NewFilePublisher(filepath.Join(s.outputDir, runID))),
		pipeline.WithCapabilities(cfg.Capabilities()),
		pipeline.WithJournal(s.journal),
	}
	runner, err := pipeline.NewRunner(opts...)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, stages, root)
}

// RunStatus returns what the journal recorded for runID. The error wraps
// pipeline.ErrRunNotFound when the run was never started.
func (s *Service) RunStatus(ctx context.Context, runID string) (pipeline.RunRecord, error) {
	if err := artifact.ValidateName(runID); err != nil {
		return pipeline.RunRecord{}, fmt.Errorf("run id: %w", err)
	}
	return s.journal.GetRun(ctx, runID)
}

// Runs returns up to limit journaled runs, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]pipeline.RunRecord, error) {
	return s.journal.ListRuns(ctx, limit)
}

// Adapter returns the presentation adapter over the artifacts of runID.
func (s *Service) Adapter(ctx context.Context, runID string) (*present.Adapter, error) {
	if err := artifact.ValidateName(runID); err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	store, err := s.stores(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("opening store for run %s: %w", runID, err)
	}
	return present.New(store, s.defs), nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline runs a fixed table of named stages in dependency order.
//
// Each stage declares the artifacts it consumes and the one it produces.
// Plan validates the table and derives the execution order; Runner executes
// the stages one at a time, committing every output to an artifact.Store
// before the next stage starts and stopping at the first failure.
//
// # Usage
//
//	r, err := pipeline.NewRunner(
//		pipeline.WithStore(store),
//		pipeline.WithPublisher(artifact.NewFilePublisher(outDir)),
//		pipeline.WithCapabilities(pipeline.NewCapabilities(pipeline.CapabilityGenerate)),
//	)
//	if err != nil {
//		return err
//	}
//	run, err := r.Run(ctx, stages, pipeline.RootInputs{
//		CaseStudyDetails: details,
//		Context:          background,
//	})
//
// # Errors
//
// Failures are reported as *StageError naming the stage. Use errors.Is with
// ErrMissingDependency, ErrCapabilityUnavailable, ErrStageFailed or
// artifact.ErrWrite to tell them apart. An invalid table returns
// ErrInvalidPipeline before any stage executes.
package pipeline

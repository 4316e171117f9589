/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy

import (
	"slices"

	"chainguard.dev/casecrew/pipeline"
)

// Stage names.
const (
	StageResearch = "research"
	StageFrame    = "frame"
	StageReview   = "review"
	StageSolve    = "solve"
)

// Artifact names.
const (
	OutputResearchReport           = "research_report"
	OutputProblemStatement         = "problem_statement"
	OutputReviewedProblemStatement = "reviewed_problem_statement"
	OutputSolution                 = "solution"
)

// Spec is a stage definition together with the persona and instructions of
// the agent that performs it.
type Spec struct {
	pipeline.Definition `yaml:",inline"`

	// Role, Goal and Backstory make up the agent's system instructions.
	Role      string `json:"role" yaml:"role"`
	Goal      string `json:"goal" yaml:"goal"`
	Backstory string `json:"backstory" yaml:"backstory"`

	// ExpectedOutput describes the deliverable and follows Description in
	// the task prompt.
	ExpectedOutput string `json:"expected_output" yaml:"expected_output"`

	// Model overrides the run's model for this stage.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

var research = []pipeline.Capability{pipeline.CapabilityGenerate, pipeline.CapabilitySearch, pipeline.CapabilityScrape}

// DefaultSpecs returns the research, frame, review, solve table. Each call
// returns a fresh copy.
func DefaultSpecs() []Spec {
	return []Spec{{
		Definition: pipeline.Definition{
			Name:         StageResearch,
			Description:  researchTask,
			Capabilities: slices.Clone(research),
			Output:       OutputResearchReport,
		},
		Role:           researchRole,
		Goal:           researchGoal,
		Backstory:      researchBackstory,
		ExpectedOutput: researchExpected,
	}, {
		Definition: pipeline.Definition{
			Name:         StageFrame,
			Description:  frameTask,
			DependsOn:    []string{OutputResearchReport},
			Capabilities: []pipeline.Capability{pipeline.CapabilityGenerate},
			Output:       OutputProblemStatement,
		},
		Role:           frameRole,
		Goal:           frameGoal,
		Backstory:      frameBackstory,
		ExpectedOutput: frameExpected,
	}, {
		Definition: pipeline.Definition{
			Name:         StageReview,
			Description:  reviewTask,
			DependsOn:    []string{OutputProblemStatement},
			Capabilities: slices.Clone(research),
			Output:       OutputReviewedProblemStatement,
			Persist:      true,
		},
		Role:           reviewRole,
		Goal:           reviewGoal,
		Backstory:      reviewBackstory,
		ExpectedOutput: reviewExpected,
	}, {
		Definition: pipeline.Definition{
			Name:         StageSolve,
			Description:  solveTask,
			DependsOn:    []string{OutputReviewedProblemStatement},
			Capabilities: slices.Clone(research),
			Output:       OutputSolution,
			Persist:      true,
		},
		Role:           solveRole,
		Goal:           solveGoal,
		Backstory:      solveBackstory,
		ExpectedOutput: solveExpected,
	}}
}

// Definitions returns the stage definitions of specs.
func Definitions(specs []Spec) []pipeline.Definition {
	out := make([]pipeline.Definition, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Definition)
	}
	return out
}

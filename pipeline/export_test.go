/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

// Metrics exposed to the external pipeline_test package.
var (
	StageExecutions = stageExecutions
	RunsTotal       = runsTotal
)

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casecrew_stage_executions_total",
			Help: "Total number of stage executions by outcome",
		},
		[]string{"stage", "outcome"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casecrew_stage_duration_seconds",
			Help:    "Wall time spent executing a stage, including the store commit",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"stage"},
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casecrew_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"outcome"},
	)
)

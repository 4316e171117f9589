/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline_test

import (
	. "chainguard.dev/casecrew/pipeline"

	"context"
	"errors"
	"testing"

	"chainguard.dev/casecrew/pipeline/artifact"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRunnerMetrics(t *testing.T) {
	okExec := StageExecutions.WithLabelValues("metrics_ok", "success")
	badExec := StageExecutions.WithLabelValues("metrics_bad", "failed")
	failedRuns := RunsTotal.WithLabelValues("failed")

	beforeOK := counterValue(t, okExec)
	beforeBad := counterValue(t, badExec)
	beforeRuns := counterValue(t, failedRuns)

	r := &recorder{}
	stages := []Stage{
		r.stage(Definition{Name: "metrics_ok", Output: "metrics_ok_out"}),
		r.failing(Definition{Name: "metrics_bad", Output: "metrics_bad_out", DependsOn: []string{"metrics_ok_out"}}, errors.New("boom")),
	}
	runner, err := NewRunner(WithStore(artifact.NewMemory()))
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), stages, RootInputs{})
	require.ErrorIs(t, err, ErrStageFailed)

	require.Equal(t, beforeOK+1, counterValue(t, okExec))
	require.Equal(t, beforeBad+1, counterValue(t, badExec))
	require.Equal(t, beforeRuns+1, counterValue(t, failedRuns))
}

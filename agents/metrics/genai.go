/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics records token usage, tool calls and request latency for
// the model-backed stage executors.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared by every executor; model and provider are dimensions.
const MeterName = "chainguard.dev/casecrew/agents"

// GenAI holds the instruments for one provider. A failed instrument is
// replaced by a no-op so metrics never break an execution.
type GenAI struct {
	provider string

	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCalls        metric.Int64Counter
	duration         metric.Float64Histogram

	enrich AttributeEnricher
}

// NewGenAI creates the instruments on the global meter provider.
func NewGenAI(provider string) *GenAI {
	return NewGenAIWithMeter(otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0")), provider)
}

// NewGenAIWithMeter creates the instruments on meter.
func NewGenAIWithMeter(meter metric.Meter, provider string) *GenAI {
	m := &GenAI{provider: provider}

	var err error
	if m.promptTokens, err = meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}")); err != nil {
		slog.Warn("Failed to create prompt tokens counter", "error", err, "provider", provider)
		m.promptTokens = noop.Int64Counter{}
	}
	if m.completionTokens, err = meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}")); err != nil {
		slog.Warn("Failed to create completion tokens counter", "error", err, "provider", provider)
		m.completionTokens = noop.Int64Counter{}
	}
	if m.toolCalls, err = meter.Int64Counter("genai.tool.calls",
		metric.WithDescription("The number of tool calls made during execution"),
		metric.WithUnit("{calls}")); err != nil {
		slog.Warn("Failed to create tool call counter", "error", err, "provider", provider)
		m.toolCalls = noop.Int64Counter{}
	}
	if m.duration, err = meter.Float64Histogram("genai.request.duration",
		metric.WithDescription("Wall time of a complete executor run, including tool round trips"),
		metric.WithUnit("s")); err != nil {
		slog.Warn("Failed to create duration histogram", "error", err, "provider", provider)
		m.duration = noop.Float64Histogram{}
	}
	return m
}

// SetAttributeEnricher installs enrich, which runs before every recording.
func (m *GenAI) SetAttributeEnricher(enrich AttributeEnricher) {
	m.enrich = enrich
}

func (m *GenAI) attributes(ctx context.Context, model string, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("provider", m.provider),
	}
	if m.enrich != nil {
		attrs = m.enrich(ctx, attrs)
	}
	return metric.WithAttributes(append(attrs, extra...)...)
}

// RecordTokens records the usage reported by one model response.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	opt := m.attributes(ctx, model)
	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordToolCall counts one invocation of tool.
func (m *GenAI) RecordToolCall(ctx context.Context, model, tool string) {
	m.toolCalls.Add(ctx, 1, m.attributes(ctx, model, attribute.String("tool", tool)))
}

// RecordDuration records how long an execution took and whether it failed.
func (m *GenAI) RecordDuration(ctx context.Context, model string, d time.Duration, err error) {
	m.duration.Record(ctx, d.Seconds(), m.attributes(ctx, model, attribute.Bool("error", err != nil)))
}

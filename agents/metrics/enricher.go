/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher adds request-scoped attributes (the pipeline stage, for
// instance) to the base model and provider attributes. Values must stay
// low-cardinality: run IDs belong in logs and traces, not here.
type AttributeEnricher func(ctx context.Context, base []attribute.KeyValue) []attribute.KeyValue

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package artifact

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// Memory is a non-durable Store used for dry runs and tests.
type Memory struct {
	mu        sync.RWMutex
	artifacts map[string]Artifact
	now       func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		artifacts: make(map[string]Artifact),
		now:       time.Now,
	}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, stage, text string) error {
	if err := ValidateName(stage); err != nil {
		return WriteError(stage, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[stage] = Artifact{Stage: stage, Text: text, CreatedAt: m.now().UTC()}
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, stage string) (Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artifacts[stage]
	if !ok {
		return Artifact{}, NotFound(stage)
	}
	return a, nil
}

// List implements Store.
func (m *Memory) List(_ context.Context) ([]Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Artifact, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Artifact) int { return strings.Compare(a.Stage, b.Stage) })
	return out, nil
}

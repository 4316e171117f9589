//go:build withauth

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gcsstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"chainguard.dev/casecrew/pipeline/artifact"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	bucket := os.Getenv("CASECREW_TEST_BUCKET")
	if bucket == "" {
		t.Skip("CASECREW_TEST_BUCKET not set")
	}
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	require.NoError(t, err)
	defer client.Close()

	runID := uuid.NewString()
	s, err := New(client, bucket, "casecrew-test", runID)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, stage := range []string{"research", "solve"} {
			_ = client.Bucket(bucket).Object(s.objectName(stage)).Delete(context.Background())
		}
	})

	if _, err := s.Get(ctx, "research"); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}

	require.NoError(t, s.Put(ctx, "research", "first"))
	require.NoError(t, s.Put(ctx, "research", "second"))
	require.NoError(t, s.Put(ctx, "solve", "answer"))

	got, err := s.Get(ctx, "research")
	require.NoError(t, err)
	if got.Text != "second" {
		t.Errorf("Get() = %q, want %q", got.Text, "second")
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	if len(list) != 2 || list[0].Stage != "research" || list[1].Stage != "solve" {
		t.Errorf("List() = %+v", list)
	}
}

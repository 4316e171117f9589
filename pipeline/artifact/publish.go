/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
)

// Publisher writes selected artifacts somewhere a user can pick them up.
type Publisher interface {
	// Publish writes text under the given output name.
	Publish(ctx context.Context, output, text string) error
}

// FilePublisher writes each published artifact to <Dir>/<output>.txt.
type FilePublisher struct {
	Dir string
}

var _ Publisher = (*FilePublisher)(nil)

// NewFilePublisher returns a publisher rooted at dir.
func NewFilePublisher(dir string) *FilePublisher {
	return &FilePublisher{Dir: dir}
}

// FileName returns the file name used for an output artifact.
func FileName(output string) string {
	return output + ".txt"
}

// Path returns the location the artifact for output is published to.
func (p *FilePublisher) Path(output string) string {
	return filepath.Join(p.Dir, FileName(output))
}

// Publish implements Publisher.
func (p *FilePublisher) Publish(ctx context.Context, output, text string) error {
	if err := ValidateName(output); err != nil {
		return WriteError(output, err)
	}
	path := p.Path(output)
	if err := WriteFileAtomic(path, []byte(text)); err != nil {
		return WriteError(output, err)
	}
	clog.FromContext(ctx).With("output", output).With("path", path).Info("Published artifact")
	return nil
}

// WriteFileAtomic replaces path with data by writing a sibling temp file and
// renaming it over the destination. Readers see the old or the new content,
// never a partial write.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

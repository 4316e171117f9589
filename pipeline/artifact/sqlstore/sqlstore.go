/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sqlstore keeps artifacts and the run journal in a SQLite database.
//
// A single database file holds every run. DB.Run returns the artifact.Store
// scoped to one run, and DB itself implements pipeline.RunJournal.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"github.com/chainguard-dev/clog"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	case_study_details TEXT NOT NULL,
	context TEXT NOT NULL,
	status TEXT NOT NULL,
	failed_stage TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS artifacts (
	run_id TEXT NOT NULL,
	stage TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (run_id, stage)
);
`


// DB is a handle on the SQLite database.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

var _ pipeline.RunJournal = (*DB)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	clog.FromContext(ctx).With("path", path).Info("Opened artifact database")
	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// StartRun implements pipeline.Journal.
func (d *DB) StartRun(ctx context.Context, runID string, root pipeline.RootInputs) error {
	now := d.now().UTC()
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO runs (id, case_study_details, context, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, root.CaseStudyDetails, root.Context, string(pipeline.StatusRunning), now, now)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", runID, err)
	}
	return nil
}

// FinishRun implements pipeline.Journal.
func (d *DB) FinishRun(ctx context.Context, runID string, status pipeline.Status, failedStage string, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	res, err := d.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, failed_stage = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), failedStage, msg, d.now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", pipeline.ErrRunNotFound, runID)
	}
	return nil
}

// GetRun implements pipeline.RunReader.
func (d *DB) GetRun(ctx context.Context, runID string) (pipeline.RunRecord, error) {
	r := pipeline.RunRecord{ID: runID}
	var status string
	err := d.db.QueryRowContext(ctx,
		`SELECT case_study_details, context, status, failed_stage, error, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&r.Root.CaseStudyDetails, &r.Root.Context, &status, &r.FailedStage, &r.Error, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.RunRecord{}, fmt.Errorf("%w: %s", pipeline.ErrRunNotFound, runID)
	} else if err != nil {
		return pipeline.RunRecord{}, fmt.Errorf("querying run %s: %w", runID, err)
	}
	r.Status = pipeline.Status(status)
	return r, nil
}

// ListRuns implements pipeline.RunReader.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]pipeline.RunRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, case_study_details, context, status, failed_stage, error, created_at, updated_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []pipeline.RunRecord
	for rows.Next() {
		var r pipeline.RunRecord
		var status string
		if err := rows.Scan(&r.ID, &r.Root.CaseStudyDetails, &r.Root.Context, &status, &r.FailedStage, &r.Error, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = pipeline.Status(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run returns the artifact store for one run.
func (d *DB) Run(runID string) *Store {
	return &Store{db: d, runID: runID}
}

// Store is the artifact.Store for a single run.
type Store struct {
	db    *DB
	runID string
}

var _ artifact.Store = (*Store)(nil)

// Put implements artifact.Store.
func (s *Store) Put(ctx context.Context, stage, text string) error {
	if err := artifact.ValidateName(stage); err != nil {
		return artifact.WriteError(stage, err)
	}
	_, err := s.db.db.ExecContext(ctx,
		`INSERT INTO artifacts (run_id, stage, text, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (run_id, stage) DO UPDATE SET text = excluded.text, created_at = excluded.created_at`,
		s.runID, stage, text, s.db.now().UTC())
	if err != nil {
		return artifact.WriteError(stage, err)
	}
	return nil
}

// Get implements artifact.Store.
func (s *Store) Get(ctx context.Context, stage string) (artifact.Artifact, error) {
	a := artifact.Artifact{Stage: stage}
	err := s.db.db.QueryRowContext(ctx,
		`SELECT text, created_at FROM artifacts WHERE run_id = ? AND stage = ?`, s.runID, stage).
		Scan(&a.Text, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return artifact.Artifact{}, artifact.NotFound(stage)
	} else if err != nil {
		return artifact.Artifact{}, fmt.Errorf("querying artifact %s/%s: %w", s.runID, stage, err)
	}
	return a, nil
}

// List implements artifact.Store.
func (s *Store) List(ctx context.Context) ([]artifact.Artifact, error) {
	rows, err := s.db.db.QueryContext(ctx,
		`SELECT stage, text, created_at FROM artifacts WHERE run_id = ? ORDER BY stage`, s.runID)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts for %s: %w", s.runID, err)
	}
	defer rows.Close()

	var out []artifact.Artifact
	for rows.Next() {
		var a artifact.Artifact
		if err := rows.Scan(&a.Stage, &a.Text, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id> [stage]",
	Short: "Show the artifacts of a run",
	Long: `Without a stage, print the recorded status of the run and list every
stage and whether its artifact exists. With a stage, print that artifact's
text.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, nil)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	adapter, err := svc.Adapter(ctx, args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 2 {
		view, err := adapter.Render(ctx, args[1])
		if err != nil {
			return err
		}
		return writeView(w, view)
	}

	rec, err := svc.RunStatus(ctx, args[0])
	switch {
	case errors.Is(err, pipeline.ErrRunNotFound):
		rec = pipeline.RunRecord{ID: args[0], Status: statusUnknown}
	case err != nil:
		return err
	}
	views, err := adapter.RenderAll(ctx)
	if err != nil {
		return err
	}
	return writeRecord(w, rec, views)
}

// statusUnknown is shown for runs with artifacts but no journal entry.
const statusUnknown pipeline.Status = "unknown"

func writeRecord(w io.Writer, rec pipeline.RunRecord, views []present.View) error {
	if err := writeStatus(w, rec.ID, rec.Status, rec.FailedStage, rec.Error); err != nil {
		return err
	}
	return writeViews(w, views)
}

func writeView(w io.Writer, v present.View) error {
	if v.Pending() {
		_, err := fmt.Fprintf(w, "%s: not produced yet\n", v.Title)
		return err
	}
	_, err := fmt.Fprintln(w, v.Text)
	return err
}

func writeViews(w io.Writer, views []present.View) error {
	table := newTable(w, []string{"Stage", "Title", "State", "Created"})
	for _, v := range views {
		created := "-"
		if !v.CreatedAt.IsZero() {
			created = v.CreatedAt.UTC().Format("2006-01-02 15:04:05")
		}
		if err := table.Append([]string{v.Stage, v.Title, string(v.State), created}); err != nil {
			return err
		}
	}
	return table.Render()
}

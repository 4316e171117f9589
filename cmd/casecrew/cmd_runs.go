/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"io"

	"chainguard.dev/casecrew/pipeline"
	"github.com/spf13/cobra"
)

var runsFlags struct {
	limit int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if runsFlags.limit <= 0 {
			return errors.New("--limit must be positive")
		}
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

		runs, err := svc.Runs(ctx, runsFlags.limit)
		if err != nil {
			return err
		}
		return writeRuns(cmd.OutOrStdout(), runs)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsFlags.limit, "limit", 20, "maximum number of runs to list")
}

func writeRuns(w io.Writer, runs []pipeline.RunRecord) error {
	table := newTable(w, []string{"Run", "Status", "Failed Stage", "Started", "Updated"})
	for _, r := range runs {
		if err := table.Append([]string{
			r.ID,
			string(r.Status),
			orDash(r.FailedStage),
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"io"

	"chainguard.dev/casecrew/agents/metaagent"
	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline"
	"github.com/spf13/cobra"
)

var runFlags struct {
	details string
	context string
	model   string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once and write its artifacts",
	Long: `Run every stage of the pipeline over one case study.

Intermediate artifacts go to the configured store. Persisted outputs are
written to OUTPUT_DIR/<run id>/<output>.txt. A failed stage stops the run;
artifacts of the stages before it are kept.`,
	Example: `  casecrew run --details "A regional grocery chain losing share to delivery apps" \
    --context "Three stores, 120 staff, thin margins"`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.details, "details", "", "case study details")
	runCmd.Flags().StringVar(&runFlags.context, "context", "", "additional context for the case study")
	runCmd.Flags().StringVar(&runFlags.model, "model", "", fmt.Sprintf("model for every stage (overrides MODEL; one of %v)", casestudy.Models))
}

func runRun(cmd *cobra.Command, _ []string) error {
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

	model := modelOr(runFlags.model, cfg.Model)
	if _, err := metaagent.ProviderFor(model); err != nil {
		return err
	}
	if !svc.Config().CanGenerate(model) {
		return fmt.Errorf("%w: no API key configured for model %q", pipeline.ErrCapabilityUnavailable, model)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	run, err := svc.Run(ctx, pipeline.RootInputs{
		CaseStudyDetails: runFlags.details,
		Context:          runFlags.context,
	}, runFlags.model)
	if run != nil {
		if werr := writeRun(cmd.OutOrStdout(), svc, run); werr != nil {
			return werr
		}
	}
	return err
}

// writeRun prints the run outcome and where its persisted outputs live.
func writeRun(w io.Writer, svc *casestudy.Service, run *pipeline.Run) error {
	if err := writeStatus(w, run.ID, run.Status, run.FailedStage, ""); err != nil {
		return err
	}

	table := newTable(w, []string{"Stage", "Output", "State", "Chars", "File"})
	for _, d := range run.Stages {
		state, chars, file := "pending", "-", "-"
		if a, ok := run.Artifact(d.Name); ok {
			state, chars = "ready", fmt.Sprint(len([]rune(a.Text)))
			if d.Persist {
				file = svc.PublishedPath(run.ID, d.Output)
			}
		}
		if err := table.Append([]string{d.Name, d.Output, state, chars, file}); err != nil {
			return err
		}
	}
	return table.Render()
}

// writeStatus prints the header shared by run and show.
func writeStatus(w io.Writer, runID string, status pipeline.Status, failedStage, runErr string) error {
	if _, err := fmt.Fprintf(w, "Run:    %s\nStatus: %s\n", runID, status); err != nil {
		return err
	}
	if failedStage != "" {
		if _, err := fmt.Fprintf(w, "Failed: %s\n", failedStage); err != nil {
			return err
		}
	}
	if runErr != "" {
		if _, err := fmt.Fprintf(w, "Error:  %s\n", runErr); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func modelOr(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

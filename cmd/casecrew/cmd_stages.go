/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline"
	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the pipeline stages in execution order",
	Long: `List the pipeline stages in execution order.

The default stage table is printed unless --pipeline (or PIPELINE_FILE)
names an override file. No credentials are needed.`,
	Args: cobra.NoArgs,
	RunE: runStages,
}

func runStages(cmd *cobra.Command, _ []string) error {
	path := rootFlags.pipeline
	if path == "" {
		cfg, err := loadConfig(cmd.Context(), nil)
		if err != nil {
			return err
		}
		path = cfg.PipelineFile
	}

	specs := casestudy.DefaultSpecs()
	if path != "" {
		var err error
		if specs, err = casestudy.LoadSpecs(path); err != nil {
			return err
		}
	}
	defs, err := pipeline.Plan(casestudy.Definitions(specs))
	if err != nil {
		return err
	}
	return writeStages(cmd.OutOrStdout(), defs)
}

func writeStages(w io.Writer, defs []pipeline.Definition) error {
	table := newTable(w, []string{"#", "Stage", "Depends On", "Capabilities", "Output", "Persisted"})
	for i, d := range defs {
		caps := make([]string, 0, len(d.Capabilities))
		for _, c := range d.Capabilities {
			caps = append(caps, string(c))
		}
		persisted := "no"
		if d.Persist {
			persisted = "yes"
		}
		if err := table.Append([]string{
			fmt.Sprint(i + 1),
			d.Name,
			orDash(strings.Join(d.DependsOn, ", ")),
			orDash(strings.Join(caps, ", ")),
			d.Output,
			persisted,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var rootFlags struct {
	pipeline string
}

var rootCmd = &cobra.Command{
	Use:   "casecrew",
	Short: "Research, frame, review and solve a business case study with LLM agents",
	Long: `casecrew turns a case study description into a research report, a
problem statement, a reviewed problem statement and a solution.

Each stage is an LLM agent that reads the artifacts of the stages before it.
Configuration comes from the environment (OPENAI_API_KEY, SERPER_API_KEY,
STORE, OUTPUT_DIR and friends).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.pipeline, "pipeline", "", "YAML file overriding the default stage table (overrides PIPELINE_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runsCmd)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/cedargen/internal/logger"
	"github.com/dacolabs/cedargen/internal/render"
)

type rootOptions struct {
	verbose bool
	logJSON bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(renderers render.Register) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cedargen",
		Short: "Generate typed models from CEDAR metadata templates",
		Long: `cedargen compiles CEDAR templates, elements and fields into typed
declarations and renders them as Go types, Markdown documentation or
canonical empty JSON-LD instances.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(opts.verbose, opts.logJSON)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(
		newGenerateCmd(renderers),
		newInspectCmd(),
		newInitCmd(renderers),
		newFormatsCmd(renderers),
		newVersionCmd(),
	)

	return rootCmd
}

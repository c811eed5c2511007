// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/cedargen/internal/config"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/prompts"
	"github.com/dacolabs/cedargen/internal/render"
)

type initOptions struct {
	format         string
	output         string
	pkg            string
	rootName       string
	plainNames     bool
	nonInteractive bool
}

func newInitCmd(renderers render.Register) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cedargen project",
		Long: `Initialize a new cedargen project with a cedargen.yaml configuration file.
The file holds the defaults used by generate.`,
		Example: `  # Interactive mode
  cedargen init

  # Non-interactive
  cedargen init --format markdown --output docs --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(cmd, renderers, cwd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultFormat, "Default output format")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Default output directory")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Default package name")
	cmd.Flags().StringVarP(&opts.rootName, "name", "n", "", "Default root type name")
	cmd.Flags().BoolVar(&opts.plainNames, "plain-names", false, "Omit the kind suffix from type names")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, renderers render.Register, dir string, opts *initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.WithHint(
			errors.Newf("%s already exists; project already initialized", config.FileName),
			"edit the existing file or remove it first",
		)
	}

	if !opts.nonInteractive && prompts.Interactive() {
		if err := prompts.RunInitForm(
			&opts.format,
			&opts.output,
			&opts.pkg,
			&opts.rootName,
			&opts.plainNames,
			renderers.Available(),
		); err != nil {
			return err
		}
	}

	if _, err := renderers.Get(opts.format); err != nil {
		return err
	}

	cfg := config.Config{
		Version:    config.CurrentConfigVersion,
		Output:     opts.output,
		Package:    opts.pkg,
		Format:     opts.format,
		RootName:   opts.rootName,
		PlainNames: opts.plainNames,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: cfgPath},
		{Label: "Format", Value: cfg.Format},
		{Label: "Output", Value: cfg.Output},
		{Label: "Plain names", Value: strconv.FormatBool(cfg.PlainNames)},
	}, "Initialization completed")
	return nil
}

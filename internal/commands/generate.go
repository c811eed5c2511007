// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/config"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/ingest"
	"github.com/dacolabs/cedargen/internal/logger"
	"github.com/dacolabs/cedargen/internal/naming"
	"github.com/dacolabs/cedargen/internal/prompts"
	"github.com/dacolabs/cedargen/internal/render"
	"github.com/dacolabs/cedargen/internal/session"
)

type generateOptions struct {
	format     string
	output     string
	pkg        string
	name       string
	plainNames bool
	watch      bool
}

func newGenerateCmd(renderers render.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <template-file>...",
		Short: "Generate code from CEDAR artifacts",
		Long: fmt.Sprintf(`Generate one output file per CEDAR template, element or field.

Flags override the values in cedargen.yaml. When no format is configured
and stdin is a terminal, the format is asked for.

Available formats: %s`, strings.Join(renderers.Available(), ", ")),
		Example: `  # Go types in ./generated
  cedargen generate study.json --format gotypes

  # Several templates, custom package and root type name
  cedargen generate study.json sample.yaml -f gotypes -o models -p models -n Study

  # Documentation with plain type names
  cedargen generate study.json -f markdown --plain-names

  # Regenerate on every save
  cedargen generate study.json -f gotypes --watch`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, renderers, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(renderers.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output directory")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package name for targets that have one (default: output directory name)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Root type name")
	cmd.Flags().BoolVar(&opts.plainNames, "plain-names", false, "Omit the kind suffix from type names")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate a file whenever it changes")

	return cmd
}

// resolveOptions merges flags over the project config. Unset formats come
// from the config file, then a prompt, then the default.
func resolveOptions(cmd *cobra.Command, s *session.Context, opts *generateOptions, formats []string) (generateOptions, error) {
	cfg := s.Config
	out := generateOptions{
		format:     opts.format,
		output:     cfg.Output,
		pkg:        cfg.Package,
		name:       cfg.RootName,
		plainNames: cfg.PlainNames,
		watch:      opts.watch,
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		out.output = opts.output
	}
	if flags.Changed("package") {
		out.pkg = opts.pkg
	}
	if flags.Changed("name") {
		out.name = opts.name
	}
	if flags.Changed("plain-names") {
		out.plainNames = opts.plainNames
	}

	if !flags.Changed("format") {
		switch {
		case s.File != nil && s.File.Format != "":
			out.format = s.File.Format
		case prompts.Interactive():
			out.format = config.DefaultFormat
			if err := prompts.RunFormatForm(&out.format, formats); err != nil {
				return generateOptions{}, err
			}
		default:
			out.format = config.DefaultFormat
		}
	}
	if out.pkg == "" {
		out.pkg = filepath.Base(out.output)
	}
	return out, nil
}

func runGenerate(cmd *cobra.Command, renderers render.Register, opts *generateOptions, files []string) error {
	s, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	set, err := resolveOptions(cmd, s, opts, renderers.Available())
	if err != nil {
		return err
	}

	renderer, err := renderers.Get(set.format)
	if err != nil {
		return errors.WithHintf(err, "available formats: %s", strings.Join(renderers.Available(), ", "))
	}

	if err := os.MkdirAll(set.output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out := cmd.OutOrStdout()
	var results, failures []prompts.ResultField
	claims := make(outputClaims, len(files))
	generate := func(path string) (string, error) {
		target := filepath.Join(set.output, outputBase(path)+renderer.FileExtension())
		if prev, ok := claims.conflict(path, target); ok {
			return "", fmt.Errorf("same output file as %s", prev)
		}
		if err := writeOutput(path, target, renderer, set); err != nil {
			return "", err
		}
		claims[target] = path
		return target, nil
	}

	for _, path := range files {
		target, err := generate(path)
		if err != nil {
			failures = append(failures, prompts.ResultField{Label: path, Value: err.Error()})
			continue
		}
		results = append(results, prompts.ResultField{Label: path, Value: target})
	}

	if len(results) > 0 {
		prompts.PrintResult(out, results, fmt.Sprintf("Generated %d file(s) as %s", len(results), set.format))
	}
	prompts.PrintFailures(out, failures)

	if set.watch {
		return watch(cmd.Context(), files, func(path string) {
			target, err := generate(path)
			if err != nil {
				prompts.PrintFailures(out, []prompts.ResultField{{Label: path, Value: err.Error()}})
				return
			}
			prompts.PrintResult(out, []prompts.ResultField{{Label: path, Value: target}}, "")
		})
	}
	if len(failures) > 0 {
		return fmt.Errorf("failed to generate %d file(s)", len(failures))
	}
	return nil
}

// outputClaims maps each written output file to the source that produced it.
type outputClaims map[string]string

// conflict returns the source owning target when that source is not path.
func (c outputClaims) conflict(path, target string) (string, bool) {
	prev, ok := c[target]
	return prev, ok && prev != path
}

func writeOutput(path, target string, renderer render.Renderer, set generateOptions) error {
	data, err := generateFile(path, renderer, set)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return err
	}
	logger.Debugw("generated", "source", path, "target", target, "format", set.format)
	return nil
}

func generateFile(path string, renderer render.Renderer, set generateOptions) ([]byte, error) {
	var ingestOpts []ingest.Option
	if set.name != "" {
		ingestOpts = append(ingestOpts, ingest.WithRootName(set.name))
	}
	t, err := ingest.LoadFile(path, ingestOpts...)
	if err != nil {
		return nil, err
	}

	nameFormat := naming.SuffixWithKind
	if set.plainNames {
		nameFormat = naming.PlainNames
	}
	forest, err := compile.Compile(t,
		compile.WithNameFormat(nameFormat),
		compile.WithDefaultName(set.name),
		compile.WithLogger(logger.Named("compile")),
	)
	if err != nil {
		return nil, err
	}

	return renderer.Render(forest, render.Options{
		Package: set.pkg,
		Source:  filepath.Base(path),
	})
}

// outputBase is the file name of path without its extension.
func outputBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

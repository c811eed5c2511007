// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/ingest"
	"github.com/dacolabs/cedargen/internal/logger"
	"github.com/dacolabs/cedargen/internal/naming"
)

type inspectOptions struct {
	dump       bool
	name       string
	plainNames bool
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <template-file>",
		Short: "Show the declarations compiled from a CEDAR artifact",
		Long: `Compile a CEDAR artifact and print its declarations as a tree,
nested under the declaration that owns them.`,
		Example: `  # Declaration tree
  cedargen inspect study.json

  # Full forest dump
  cedargen inspect study.json --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Dump every declaration and constant")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Root type name")
	cmd.Flags().BoolVar(&opts.plainNames, "plain-names", false, "Omit the kind suffix from type names")

	return cmd
}

func runInspect(w io.Writer, path string, opts *inspectOptions) error {
	var ingestOpts []ingest.Option
	if opts.name != "" {
		ingestOpts = append(ingestOpts, ingest.WithRootName(opts.name))
	}
	t, err := ingest.LoadFile(path, ingestOpts...)
	if err != nil {
		return err
	}

	nameFormat := naming.SuffixWithKind
	if opts.plainNames {
		nameFormat = naming.PlainNames
	}
	forest, err := compile.Compile(t,
		compile.WithNameFormat(nameFormat),
		compile.WithDefaultName(opts.name),
		compile.WithLogger(logger.Named("compile")),
	)
	if err != nil {
		return err
	}

	if opts.dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(w, slices.Collect(forest.All()), forest.Constants())
		return nil
	}

	for _, root := range forest.Roots() {
		_, _ = fmt.Fprintln(w, declarationTree(forest, root))
	}
	return nil
}

var kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))

func declarationTree(f *compile.Forest, d compile.Declaration) *ltree.Tree {
	t := ltree.Root(describe(d)).Enumerator(ltree.RoundedEnumerator)
	for _, n := range f.Nested(d.ID) {
		if len(n.Nested) > 0 {
			t.Child(declarationTree(f, n))
		} else {
			t.Child(describe(n))
		}
	}
	return t
}

func describe(d compile.Declaration) string {
	notes := []string{d.Kind.String()}
	switch d.Kind {
	case compile.Structural:
		if d.Open {
			notes = append(notes, "attribute values")
		}
	case compile.Literal:
		if d.Datatype != "" {
			notes = append(notes, d.Datatype)
		}
	case compile.Reference:
		if d.LinkOnly {
			notes = append(notes, "link only")
		}
	case compile.Container:
		notes = append(notes, fmt.Sprintf("of %s %s", d.Item.Name, d.Bounds))
	}
	return d.Name + " " + kindStyle.Render("("+strings.Join(notes, ", ")+")")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/cedargen/internal/prompts"
	"github.com/dacolabs/cedargen/internal/render"
)

func newFormatsCmd(renderers render.Register) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make([]prompts.ResultField, 0, len(renderers))
			for _, name := range renderers.Available() {
				r, _ := renderers.Get(name)
				fields = append(fields, prompts.ResultField{Label: name, Value: "*" + r.FileExtension()})
			}
			prompts.PrintResult(cmd.OutOrStdout(), fields, "")
			return nil
		},
	}
}

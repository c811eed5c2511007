// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/cedargen/internal/commands"
	"github.com/dacolabs/cedargen/internal/render"
	"github.com/dacolabs/cedargen/internal/render/gotypes"
	"github.com/dacolabs/cedargen/internal/render/jsonld"
	"github.com/dacolabs/cedargen/internal/render/markdown"
	"github.com/dacolabs/cedargen/internal/render/pydantic"
	"github.com/dacolabs/cedargen/internal/render/scala"
)

// Renderers returns every output format the CLI ships with.
func Renderers() render.Register {
	return render.NewRegister(
		&gotypes.Renderer{},
		&markdown.Renderer{},
		&jsonld.Renderer{},
		&scala.Renderer{},
		&pydantic.Renderer{},
	)
}

// Run is the main application logic, extracted for testability.
// It accepts the command-line arguments without the program name.
func Run(ctx context.Context, args []string) error {
	rootCmd := commands.NewRootCmd(Renderers())
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

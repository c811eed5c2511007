// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(format, output, pkg, rootName *string, plainNames *bool, formats []string) error {
	return huh.NewForm(
		huh.NewGroup(
			FormatSelect(format, formats),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("generated").
				Validate(requiredValidator("output directory")).
				Value(output),
			huh.NewInput().
				Title("Go package name").
				Description("Leave empty to use the output directory name").
				Validate(identifierValidator).
				Value(pkg),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Root type name").
				Description("Leave empty to keep the default").
				Value(rootName),
			huh.NewSelect[bool]().
				Title("Type names").
				Options(
					huh.NewOption("Suffixed with kind (PersonElement)", false),
					huh.NewOption("Plain (Person)", true),
				).
				Value(plainNames),
		),
	).WithTheme(Theme()).Run()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package render turns declaration forests into generated files.
package render

import (
	"sort"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
)

// ErrUnknownFormat is returned by Register.Get for an unregistered format.
var ErrUnknownFormat = errors.New("unknown format")

// DefaultPackage is the Go package name used when none is given.
const DefaultPackage = "cedar"

// Options carries per-run settings shared by all renderers.
type Options struct {
	Package string // package name for targets that have one
	Source  string // artifact the forest was compiled from
}

// Renderer defines the interface all output formats must implement.
type Renderer interface {
	// Name returns the format identifier, e.g. "gotypes".
	Name() string

	// Render converts a forest to the target format.
	Render(f *compile.Forest, opts Options) ([]byte, error)

	// FileExtension returns the output file extension, e.g. ".go".
	FileExtension() string
}

// Register maps format names to renderers.
type Register map[string]Renderer

// NewRegister returns a register holding the given renderers.
func NewRegister(renderers ...Renderer) Register {
	r := make(Register, len(renderers))
	for _, rn := range renderers {
		r.Add(rn)
	}
	return r
}

// Add registers rn under its name.
func (r Register) Add(rn Renderer) {
	r[rn.Name()] = rn
}

// Get retrieves a renderer by name.
func (r Register) Get(name string) (Renderer, error) {
	rn, ok := r[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
	return rn, nil
}

// Available returns all registered format names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package naming assigns type and constant names to schema nodes.
//
// An Oracle lives for one generation run. Names are memoized by NodeID, so a
// node keeps the name it was first given even when it is looked up again
// from a different scope.
package naming

import (
	"strconv"
	"strings"

	"github.com/dacolabs/cedargen/internal/casing"
	"github.com/dacolabs/cedargen/internal/tree"
)

// Format controls whether type names carry a kind suffix.
type Format int

const (
	// SuffixWithKind appends "Field" or "Element" (and "Instance" for a root).
	SuffixWithKind Format = iota
	// PlainNames uses the normalized label only.
	PlainNames
)

// Type name suffixes.
const (
	InstanceSuffix = "Instance"
	FieldSuffix    = "Field"
	ElementSuffix  = "Element"
)

// DefaultTemplateName is the type name of a template root.
const DefaultTemplateName = "MetadataInstance"

// Constant pairs a field-name constant symbol with the label it stands for.
type Constant struct {
	Symbol string
	Label  string
}

// Oracle hands out names for the nodes of one tree.
type Oracle struct {
	format      Format
	defaultName string

	types map[tree.NodeID]string

	constByNode  map[tree.NodeID]string
	constByLabel map[string]string
	usedSymbols  map[string]bool
	constants    []Constant
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithFormat selects the type name format.
func WithFormat(f Format) Option {
	return func(o *Oracle) { o.format = f }
}

// WithDefaultName overrides DefaultTemplateName. Blank names are ignored.
func WithDefaultName(name string) Option {
	return func(o *Oracle) {
		if strings.TrimSpace(name) != "" {
			o.defaultName = name
		}
	}
}

// New returns an Oracle with empty memo tables.
func New(opts ...Option) *Oracle {
	o := &Oracle{
		format:       SuffixWithKind,
		defaultName:  DefaultTemplateName,
		types:        make(map[tree.NodeID]string),
		constByNode:  make(map[tree.NodeID]string),
		constByLabel: make(map[string]string),
		usedSymbols:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultName returns the name given to template roots.
func (o *Oracle) DefaultName() string {
	return o.defaultName
}

// TypeName returns the type name of n. The collision counter is the number
// of nodes in scope whose label equals n's label ignoring case, plus one;
// a counter above one is appended to the name. Scope must not already
// contain n.
func (o *Oracle) TypeName(n tree.Node, scope *Scope) string {
	label := casing.StripMarker(n.Label)
	if strings.TrimSpace(label) == "" || n.Kind == tree.KindTemplate {
		return o.defaultName
	}
	if name, ok := o.types[n.ID]; ok {
		return name
	}

	count := 1
	spelling := label
	for other := range scope.Nodes() {
		if strings.EqualFold(other.Label, label) {
			count++
			spelling = casing.StripMarker(other.Label)
		}
	}

	// Colliding labels share the spelling of the earliest one in scope.
	name := casing.Normalize(spelling, casing.StartWithUppercase)
	if o.format == SuffixWithKind {
		if n.Root {
			name += InstanceSuffix
		}
		if n.Kind.IsField() {
			name += FieldSuffix
		} else {
			name += ElementSuffix
		}
	}
	if count > 1 {
		name += strconv.Itoa(count)
	}

	o.types[n.ID] = name
	return name
}

// ConstantName returns the field-name constant symbol of n. Nodes with the
// same label share a constant; different labels that normalize to the same
// symbol are told apart by a numeric suffix in first-seen order.
func (o *Oracle) ConstantName(n tree.Node) string {
	if sym, ok := o.constByNode[n.ID]; ok {
		return sym
	}
	label := strings.TrimSpace(casing.StripMarker(n.Label))
	sym, ok := o.constByLabel[label]
	if !ok {
		base := casing.ConstantSymbol(label)
		sym = base
		for i := 2; o.usedSymbols[sym]; i++ {
			sym = base + strconv.Itoa(i)
		}
		o.usedSymbols[sym] = true
		o.constByLabel[label] = sym
		o.constants = append(o.constants, Constant{Symbol: sym, Label: label})
	}
	o.constByNode[n.ID] = sym
	return sym
}

// Constants returns the constant table in first-seen order.
func (o *Oracle) Constants() []Constant {
	out := make([]Constant, len(o.constants))
	copy(out, o.constants)
	return out
}

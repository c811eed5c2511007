// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

// Data is the complete input passed to a renderer template.
type Data struct {
	Root        TypeDef        // declaration of the tree root
	Types       []TypeDef      // every other declaration in pre-order
	Constants   []Constant     // field-name constant table
	Description string         // root description, if any
	Extra       map[string]any // renderer-specific template data
}

// TypeDef is one declaration with its names resolved for a target.
type TypeDef struct {
	Name        string  // formatted, forest-unique type name
	Kind        string  // "structural", "literal", "reference" or "container"
	Description string  // node description, if any
	Fields      []Field // ordered members
	Root        bool

	Datatype string // literal datatype tag
	LinkOnly bool   // reference without a label member

	Item     string // container item type name
	MinItems int
	MaxItems int // -1 when unbounded
	Seeded   bool

	Open    bool           // structural with an attribute map
	Context []ContextEntry // structural context in order
}

// IsStructural reports whether t comes from a template or an element.
func (t TypeDef) IsStructural() bool { return t.Kind == "structural" }

// IsLiteral reports whether t wraps a literal value.
func (t TypeDef) IsLiteral() bool { return t.Kind == "literal" }

// IsReference reports whether t wraps an IRI.
func (t TypeDef) IsReference() bool { return t.Kind == "reference" }

// IsContainer reports whether t is a sequence of another type.
func (t TypeDef) IsContainer() bool { return t.Kind == "container" }

// Bounded reports whether a container has an upper bound.
func (t TypeDef) Bounded() bool { return t.MaxItems >= 0 }

// Field is a single member of a type definition.
type Field struct {
	Name        string // member name (may be mutated by EnrichField)
	Key         string // serialization key
	Type        string // fully resolved target type string
	Nullable    bool
	Tag         string // target-specific annotation, e.g. `json:"@id"`
	Description string
	Role        string // "identifier", "provenance", "child", "attributes" or "value"
	Constant    string // field-name constant of a child member
	Ref         string // type name of the referenced declaration, if any
	Container   bool   // Ref names a container
	Timestamp   bool
}

// Constant pairs a field-name symbol with its label.
type Constant struct {
	Symbol string
	Label  string
}

// ContextEntry is one JSON-LD context term. Exactly one of IRI and Type is set.
type ContextEntry struct {
	Symbol string
	Term   string
	IRI    string
	Type   string
}

// UniqueTerms keeps the last entry of each term, in input order.
func UniqueTerms(in []ContextEntry) []ContextEntry {
	last := make(map[string]int, len(in))
	for i, e := range in {
		last[e.Term] = i
	}
	out := make([]ContextEntry, 0, len(last))
	for i, e := range in {
		if last[e.Term] == i {
			out = append(out, e)
		}
	}
	return out
}

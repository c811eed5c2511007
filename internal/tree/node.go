// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package tree holds the immutable schema tree of a metadata template.
//
// A tree is an arena of nodes addressed by NodeID. IDs are assigned in
// pre-order when the tree is built, so the root is always 0 and a node's
// descendants have larger IDs than the node itself.
package tree

import "fmt"

// Kind is the closed set of artifact kinds found in a template.
type Kind int

const (
	// KindUnknown is the zero Kind; it never comes out of a valid artifact.
	KindUnknown Kind = iota
	// KindTemplate is the template itself, the root of the tree.
	KindTemplate
	// KindElement groups fields and nested elements.
	KindElement
	// KindLiteralField holds a literal value.
	KindLiteralField
	// KindReferenceField holds an IRI value with an optional label.
	KindReferenceField
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindTemplate:
		return "template"
	case KindElement:
		return "element"
	case KindLiteralField:
		return "literal-field"
	case KindReferenceField:
		return "reference-field"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsField reports whether k is one of the field kinds.
func (k Kind) IsField() bool {
	return k == KindLiteralField || k == KindReferenceField
}

// IsStructural reports whether k groups children.
func (k Kind) IsStructural() bool {
	return k == KindTemplate || k == KindElement
}

// InputKind is the platform's input type marker for a field.
type InputKind string

const (
	// InputAttributeValue folds the field into its parent's attribute map.
	InputAttributeValue InputKind = "attribute-value"
	// InputLink marks a reference field that carries an IRI and no label.
	InputLink InputKind = "link"
)

// NodeID addresses a node within its tree.
type NodeID int

// Node is a read-only view of a schema node. Values handed out by Tree are
// copies; mutating them does not affect the tree.
type Node struct {
	ID          NodeID
	Kind        Kind
	Root        bool
	Identifier  string // artifact IRI, may be empty
	Label       string
	Description string
	Datatype    string // literal datatype tag such as "xsd:decimal"
	InputKind   InputKind
	Required    bool
	Cardinality Cardinality
	PropertyIRI string

	children []NodeID
}

// IsAttributeValue reports whether the node is folded into its parent.
func (n Node) IsAttributeValue() bool {
	return n.InputKind == InputAttributeValue
}

// IsLinkOnly reports whether the node holds an IRI without a label.
func (n Node) IsLinkOnly() bool {
	return n.InputKind == InputLink
}

// IsMultiple reports whether the node permits more than one value.
func (n Node) IsMultiple() bool {
	return n.Cardinality.IsMultiple()
}

// NumChildren returns the number of direct children.
func (n Node) NumChildren() int {
	return len(n.children)
}

func (n Node) String() string {
	return fmt.Sprintf("%s %q (#%d)", n.Kind, n.Label, n.ID)
}

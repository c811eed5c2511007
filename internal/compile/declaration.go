// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compile

import (
	"iter"

	"github.com/dacolabs/cedargen/internal/ldcontext"
	"github.com/dacolabs/cedargen/internal/naming"
	"github.com/dacolabs/cedargen/internal/tree"
)

// DeclID addresses a declaration within its forest.
type DeclID int

// NoDecl is the DeclID of an absent declaration.
const NoDecl DeclID = -1

// DeclKind classifies declarations.
type DeclKind int

const (
	// Structural declarations come from templates and elements.
	Structural DeclKind = iota
	// Literal declarations wrap one literal value.
	Literal
	// Reference declarations wrap an IRI and an optional label.
	Reference
	// Container declarations hold an ordered sequence of another declaration.
	Container
)

func (k DeclKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Literal:
		return "literal"
	case Reference:
		return "reference"
	case Container:
		return "container"
	default:
		return "unknown"
	}
}

// TypeKind classifies member types.
type TypeKind int

const (
	// TypeDecl refers to another declaration of the forest.
	TypeDecl TypeKind = iota
	// TypeSequence is an ordered sequence of the referenced declaration.
	TypeSequence
	// TypeIdentifier is an IRI.
	TypeIdentifier
	// TypeString is a plain string.
	TypeString
	// TypeTimestamp is a point in time.
	TypeTimestamp
	// TypeAttributeMap is an open-ended string-keyed bag of literal values.
	TypeAttributeMap
)

// TypeRef is the type of a member. Decl and Name are set for TypeDecl and
// TypeSequence only.
type TypeRef struct {
	Kind TypeKind
	Decl DeclID
	Name string
}

func builtin(k TypeKind) TypeRef {
	return TypeRef{Kind: k, Decl: NoDecl}
}

func declRef(d Declaration) TypeRef {
	return TypeRef{Kind: TypeDecl, Decl: d.ID, Name: d.Name}
}

// MemberRole tells where a member comes from.
type MemberRole int

const (
	// RoleIdentifier is the instance identifier of a structural declaration.
	RoleIdentifier MemberRole = iota
	// RoleProvenance is one of the root-only provenance members.
	RoleProvenance
	// RoleChild stands for one child node.
	RoleChild
	// RoleAttributeValues is the open-ended attribute map.
	RoleAttributeValues
	// RoleValue is the payload of a scalar or container declaration.
	RoleValue
)

// Member is one named, typed slot of a declaration.
type Member struct {
	Name     string
	Key      string // serialization key, e.g. "@id" or the child's label
	Type     TypeRef
	Nullable bool
	Role     MemberRole
	Node     tree.NodeID // child node for RoleChild, -1 otherwise
	Constant string      // field-name constant for RoleChild
}

// Declaration is one generated type.
type Declaration struct {
	ID          DeclID
	Parent      DeclID
	Nested      []DeclID
	Name        string
	Kind        DeclKind
	Node        tree.NodeID
	Description string
	Members     []Member

	// Literal only.
	Datatype string
	// Reference only: no label member, renderers use an empty label.
	LinkOnly bool

	// Container only.
	Item   TypeRef
	Bounds tree.Cardinality
	// Seeded containers start with one canonical-empty item.
	Seeded bool

	// Structural only: an attribute map member is present.
	Open bool
}

// Member returns the member with the given name.
func (d Declaration) Member(name string) (Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// MinItems returns the lower bound of a container.
func (d Declaration) MinItems() int { return d.Bounds.Min() }

// MaxItems returns the upper bound of a container, tree.Unbounded if none.
func (d Declaration) MaxItems() int { return d.Bounds.Max() }

// Satisfied reports whether a container holding count items meets its bounds.
func (d Declaration) Satisfied(count int) bool {
	return d.Bounds.Satisfied(count)
}

// Forest is the output of one compiler run: every declaration in pre-order,
// the top-level declarations, a context per structural declaration and the
// field-name constant table.
type Forest struct {
	tree      *tree.Tree
	decls     []Declaration
	roots     []DeclID
	contexts  map[DeclID]ldcontext.Map
	constants []naming.Constant
	byNode    map[tree.NodeID]DeclID
	listNode  map[tree.NodeID]DeclID
	newID     func() string
}

// Tree returns the schema tree the forest was compiled from.
func (f *Forest) Tree() *tree.Tree { return f.tree }

// Len returns the number of declarations.
func (f *Forest) Len() int { return len(f.decls) }

// Decl returns the declaration with the given id.
func (f *Forest) Decl(id DeclID) (Declaration, bool) {
	if id < 0 || int(id) >= len(f.decls) {
		return Declaration{}, false
	}
	return f.decls[id], true
}

// Root returns the declaration of the tree root.
func (f *Forest) Root() Declaration {
	return f.decls[f.roots[0]]
}

// Roots returns the top-level declarations: the root and, when the root is
// multi-valued, its container.
func (f *Forest) Roots() []Declaration {
	out := make([]Declaration, len(f.roots))
	for i, id := range f.roots {
		out[i] = f.decls[id]
	}
	return out
}

// Nested returns the declarations owned by id in emission order.
func (f *Forest) Nested(id DeclID) []Declaration {
	d, ok := f.Decl(id)
	if !ok {
		return nil
	}
	out := make([]Declaration, len(d.Nested))
	for i, nid := range d.Nested {
		out[i] = f.decls[nid]
	}
	return out
}

// All iterates over every declaration in pre-order.
func (f *Forest) All() iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for _, d := range f.decls {
			if !yield(d) {
				return
			}
		}
	}
}

// ByName returns the first declaration, in pre-order, with the given name.
func (f *Forest) ByName(name string) (Declaration, bool) {
	for _, d := range f.decls {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

// DeclFor returns the declaration generated for node, excluding containers.
func (f *Forest) DeclFor(node tree.NodeID) (Declaration, bool) {
	id, ok := f.byNode[node]
	if !ok {
		return Declaration{}, false
	}
	return f.decls[id], true
}

// ContainerFor returns the container declaration paired with node.
func (f *Forest) ContainerFor(node tree.NodeID) (Declaration, bool) {
	id, ok := f.listNode[node]
	if !ok {
		return Declaration{}, false
	}
	return f.decls[id], true
}

// Context returns the context of a structural declaration.
func (f *Forest) Context(id DeclID) (ldcontext.Map, bool) {
	m, ok := f.contexts[id]
	return m, ok
}

// Constants returns the field-name constant table.
func (f *Forest) Constants() []naming.Constant {
	out := make([]naming.Constant, len(f.constants))
	copy(out, f.constants)
	return out
}

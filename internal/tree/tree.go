// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tree

import (
	"iter"
	"strconv"
	"strings"

	"github.com/dacolabs/cedargen/internal/errors"
)

var (
	// ErrBlankLabel indicates a non-root node without a label.
	ErrBlankLabel = errors.New("blank label")

	// ErrInvalidRoot indicates a root that is neither a template nor an element.
	ErrInvalidRoot = errors.New("root must be a template or an element")

	// ErrNestedTemplate indicates a template node below the root.
	ErrNestedTemplate = errors.New("template below root")
)

// NodeSpec describes a node before the tree is built. Ingestion fills these
// in; Build validates them and freezes the result.
type NodeSpec struct {
	Kind        Kind
	Identifier  string
	Label       string
	Description string
	Datatype    string
	InputKind   InputKind
	Required    bool
	// Cardinality defaults to ExactlyOne for the root and ZeroOrOne otherwise.
	Cardinality *Cardinality
	PropertyIRI string
	Children    []NodeSpec
}

// Tree is an immutable arena of schema nodes.
type Tree struct {
	nodes []Node
}

// Build validates root and its descendants and returns the frozen tree.
// Errors name the offending node by its position, e.g. "children[1].children[0]".
func Build(root NodeSpec) (*Tree, error) {
	if !root.Kind.IsStructural() {
		return nil, errors.Wrapf(ErrInvalidRoot, "got %s", root.Kind)
	}
	b := &builder{}
	if _, err := b.add(root, "", true); err != nil {
		return nil, err
	}
	return &Tree{nodes: b.nodes}, nil
}

// MustBuild is Build for trees known to be valid, such as test fixtures.
func MustBuild(root NodeSpec) *Tree {
	t, err := Build(root)
	if err != nil {
		panic(err)
	}
	return t
}

type builder struct {
	nodes []Node
}

func (b *builder) add(spec NodeSpec, path string, root bool) (NodeID, error) {
	where := path
	if where == "" {
		where = "root"
	}
	if !root {
		if strings.TrimSpace(strings.TrimPrefix(spec.Label, ">")) == "" {
			return 0, errors.Wrapf(ErrBlankLabel, "%s", where)
		}
		if spec.Kind == KindTemplate {
			return 0, errors.Wrapf(ErrNestedTemplate, "%s %q", where, spec.Label)
		}
	}

	card := ZeroOrOne()
	if root {
		card = ExactlyOne()
	}
	if spec.Cardinality != nil {
		card = *spec.Cardinality
	}

	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:          id,
		Kind:        spec.Kind,
		Root:        root,
		Identifier:  spec.Identifier,
		Label:       spec.Label,
		Description: spec.Description,
		Datatype:    spec.Datatype,
		InputKind:   spec.InputKind,
		Required:    spec.Required,
		Cardinality: card,
		PropertyIRI: spec.PropertyIRI,
	})

	children := make([]NodeID, 0, len(spec.Children))
	for i, child := range spec.Children {
		childPath := "children[" + strconv.Itoa(i) + "]"
		if path != "" {
			childPath = path + "." + childPath
		}
		cid, err := b.add(child, childPath, false)
		if err != nil {
			return 0, err
		}
		children = append(children, cid)
	}
	b.nodes[id].children = children
	return id, nil
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.nodes[0]
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Children returns the direct children of id in declaration order.
func (t *Tree) Children(id NodeID) []Node {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	out := make([]Node, len(n.children))
	for i, cid := range n.children {
		out[i] = t.nodes[cid]
	}
	return out
}

// All returns an iterator over every node in pre-order.
func (t *Tree) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range t.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Descendants returns an iterator over the strict descendants of id in pre-order.
func (t *Tree) Descendants(id NodeID) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		t.walk(id, yield)
	}
}

func (t *Tree) walk(id NodeID, yield func(Node) bool) bool {
	n, ok := t.Node(id)
	if !ok {
		return true
	}
	for _, cid := range n.children {
		if !yield(t.nodes[cid]) {
			return false
		}
		if !t.walk(cid, yield) {
			return false
		}
	}
	return true
}

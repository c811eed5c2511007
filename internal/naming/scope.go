// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package naming

import (
	"iter"

	"github.com/dacolabs/cedargen/internal/tree"
)

// Scope is an immutable, ordered set of nodes visible while naming. The nil
// Scope is empty. Extending a scope never changes the receiver, so a scope
// can be shared between sibling branches of a traversal.
type Scope struct {
	parent *Scope
	node   tree.Node
	size   int
}

// With returns a scope holding the receiver's nodes followed by n. A node
// already in the scope is not added twice.
func (s *Scope) With(n tree.Node) *Scope {
	if s.Contains(n.ID) {
		return s
	}
	return &Scope{parent: s, node: n, size: s.Len() + 1}
}

// Len returns the number of nodes in the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Nodes iterates over the scope, most recently added first.
func (s *Scope) Nodes() iter.Seq[tree.Node] {
	return func(yield func(tree.Node) bool) {
		for cur := s; cur != nil; cur = cur.parent {
			if !yield(cur.node) {
				return
			}
		}
	}
}

// Contains reports whether the node with the given id is in the scope.
func (s *Scope) Contains(id tree.NodeID) bool {
	for n := range s.Nodes() {
		if n.ID == id {
			return true
		}
	}
	return false
}

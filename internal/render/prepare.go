// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"strconv"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
)

// prepareContext holds state during forest preparation.
type prepareContext struct {
	forest   *compile.Forest
	resolver TypeResolver
	names    map[compile.DeclID]string
}

// Prepare converts a forest into Data ready for template execution.
// Declaration names are made unique across the forest: a name already taken
// is prefixed with its owner's name, then suffixed with a counter.
func Prepare(f *compile.Forest, resolver TypeResolver) (*Data, error) {
	if f == nil || f.Len() == 0 {
		return nil, errors.New("empty forest")
	}

	ctx := &prepareContext{
		forest:   f,
		resolver: resolver,
		names:    UniqueNames(f, resolver),
	}

	root := f.Root()
	data := &Data{
		Description: root.Description,
		Extra:       make(map[string]any),
	}
	for d := range f.All() {
		td := ctx.typeDef(d)
		if d.ID == root.ID {
			data.Root = td
			continue
		}
		data.Types = append(data.Types, td)
	}
	for _, c := range f.Constants() {
		data.Constants = append(data.Constants, Constant{Symbol: c.Symbol, Label: c.Label})
	}
	return data, nil
}

// UniqueNames returns a forest-unique, target-formatted name for every
// declaration. When r is a NameReserver, names never collide with its
// reserved identifiers nor with the identifiers derived from another name.
func UniqueNames(f *compile.Forest, r TypeResolver) map[compile.DeclID]string {
	names := make(map[compile.DeclID]string, f.Len())
	taken := make(map[string]bool, f.Len())
	derived := func(string) []string { return nil }
	if nr, ok := r.(NameReserver); ok {
		for _, n := range nr.ReservedNames() {
			taken[n] = true
		}
		derived = nr.DerivedNames
	}

	free := func(name string) bool {
		if taken[name] {
			return false
		}
		for _, d := range derived(name) {
			if taken[d] {
				return false
			}
		}
		return true
	}

	for d := range f.All() {
		name := r.FormatTypeName(d.Name)
		if d.Kind == compile.Container {
			name = r.FormatTypeName(names[d.Item.Decl] + "List")
		} else if owner, ok := names[d.Parent]; ok && !free(name) {
			name = r.FormatTypeName(owner + d.Name)
		}
		base := name
		for i := 2; !free(name); i++ {
			name = base + strconv.Itoa(i)
		}
		taken[name] = true
		for _, dn := range derived(name) {
			taken[dn] = true
		}
		names[d.ID] = name
	}
	return names
}

func (c *prepareContext) typeName(id compile.DeclID) string {
	return c.names[id]
}

func (c *prepareContext) typeDef(d compile.Declaration) TypeDef {
	td := TypeDef{
		Name:        c.typeName(d.ID),
		Kind:        d.Kind.String(),
		Description: d.Description,
		Root:        d.Parent == compile.NoDecl,
		Datatype:    d.Datatype,
		LinkOnly:    d.LinkOnly,
		Open:        d.Open,
	}
	if d.Kind == compile.Container {
		td.Item = c.typeName(d.Item.Decl)
		td.MinItems = d.MinItems()
		td.MaxItems = -1
		if d.Bounds.HasUpperBound() {
			td.MaxItems = d.MaxItems()
		}
		td.Seeded = d.Seeded
	}
	if ctx, ok := c.forest.Context(d.ID); ok {
		for _, e := range ctx.Entries() {
			td.Context = append(td.Context, ContextEntry{Symbol: e.Symbol, Term: e.Term, IRI: e.IRI, Type: e.Type})
		}
	}
	td.Fields = c.fields(d)
	return td
}

func (c *prepareContext) fields(d compile.Declaration) []Field {
	fields := make([]Field, 0, len(d.Members))
	for _, m := range d.Members {
		f := Field{
			Name:      m.Name,
			Key:       m.Key,
			Type:      c.resolveType(m.Type),
			Nullable:  m.Nullable,
			Role:      roleName(m.Role),
			Constant:  m.Constant,
			Timestamp: m.Type.Kind == compile.TypeTimestamp,
		}
		if m.Type.Kind == compile.TypeDecl || m.Type.Kind == compile.TypeSequence {
			f.Ref = c.typeName(m.Type.Decl)
			if ref, ok := c.forest.Decl(m.Type.Decl); ok {
				f.Container = ref.Kind == compile.Container
			}
		}
		if m.Role == compile.RoleChild {
			if n, ok := c.forest.Tree().Node(m.Node); ok {
				f.Description = n.Description
			}
		}
		c.resolver.EnrichField(&f)
		fields = append(fields, f)
	}
	return fields
}

func (c *prepareContext) resolveType(t compile.TypeRef) string {
	switch t.Kind {
	case compile.TypeDecl:
		return c.resolver.DeclType(c.typeName(t.Decl))
	case compile.TypeSequence:
		return c.resolver.ListType(c.resolver.DeclType(c.typeName(t.Decl)))
	case compile.TypeAttributeMap:
		return c.resolver.MapType()
	default:
		return c.resolver.ScalarType(t.Kind)
	}
}

func roleName(r compile.MemberRole) string {
	switch r {
	case compile.RoleIdentifier:
		return "identifier"
	case compile.RoleProvenance:
		return "provenance"
	case compile.RoleChild:
		return "child"
	case compile.RoleAttributeValues:
		return "attributes"
	default:
		return "value"
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ldcontext

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/cedargen/internal/casing"
	"github.com/dacolabs/cedargen/internal/tree"
)

func constantSymbol(n tree.Node) string {
	return casing.ConstantSymbol(n.Label)
}

func fixture() *tree.Tree {
	return tree.MustBuild(tree.NodeSpec{
		Kind: tree.KindTemplate,
		Children: []tree.NodeSpec{
			{Kind: tree.KindLiteralField, Label: "Full Name", PropertyIRI: "http://example.org/hasName"},
			{Kind: tree.KindLiteralField, Label: "Notes"},
			{Kind: tree.KindElement, Label: "Address", PropertyIRI: "http://example.org/hasAddress", Children: []tree.NodeSpec{
				{Kind: tree.KindLiteralField, Label: "City", PropertyIRI: "http://example.org/city"},
			}},
		},
	})
}

func TestAssemble_ChildPropertyIRIs(t *testing.T) {
	tr := fixture()
	ctx := Assemble(tr, 0, constantSymbol)

	e, ok := ctx.Lookup("Full_Name")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/hasName", e.IRI)
	assert.Equal(t, "Full Name", e.Term)

	_, ok = ctx.Lookup("Notes")
	assert.False(t, ok, "children without a property IRI are omitted")

	// The grandchild belongs to the element's context, not the root's.
	_, ok = ctx.Lookup("City")
	assert.False(t, ok)

	elem := Assemble(tr, 3, constantSymbol)
	assert.Equal(t, 1, elem.Len())
	city, ok := elem.Lookup("City")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/city", city.IRI)
}

func TestAssemble_RootConstants(t *testing.T) {
	ctx := Assemble(fixture(), 0, constantSymbol)

	assert.Equal(t, 2+len(Prefixes)+len(Annotations), ctx.Len())

	schema, ok := ctx.Lookup("schema")
	require.True(t, ok)
	assert.Equal(t, "http://schema.org/", schema.IRI)

	created, ok := ctx.Lookup("pav:createdOn")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"@type": "xsd:dateTime"}, created.Value())

	// Non-root contexts never get the generator constants.
	elem := Assemble(fixture(), 3, constantSymbol)
	_, ok = elem.Lookup("schema")
	assert.False(t, ok)
}

func TestAssemble_FieldHasEmptyContext(t *testing.T) {
	assert.Equal(t, 0, Assemble(fixture(), 1, constantSymbol).Len())
	assert.Equal(t, 0, Assemble(fixture(), 99, constantSymbol).Len())
}

func TestMap_MarshalJSONKeepsOrder(t *testing.T) {
	tr := tree.MustBuild(tree.NodeSpec{Kind: tree.KindElement, Label: "Person", Children: []tree.NodeSpec{
		{Kind: tree.KindLiteralField, Label: "Zeta", PropertyIRI: "http://example.org/z"},
		{Kind: tree.KindLiteralField, Label: "Alpha", PropertyIRI: "http://example.org/a"},
	}})

	data, err := json.Marshal(Assemble(tr, 0, constantSymbol))
	require.NoError(t, err)

	s := string(data)
	assert.Less(t, strings.Index(s, `"Zeta"`), strings.Index(s, `"Alpha"`))
	assert.Contains(t, s, `"pav:createdBy":{"@type":"@id"}`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "http://example.org/a", decoded["Alpha"])
}

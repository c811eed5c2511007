// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/cedargen/internal/tree"
)

// siblings builds a template whose children carry the given labels and kinds.
func siblings(t *testing.T, kind tree.Kind, labels ...string) []tree.Node {
	t.Helper()
	children := make([]tree.NodeSpec, len(labels))
	for i, l := range labels {
		children[i] = tree.NodeSpec{Kind: kind, Label: l}
	}
	tr, err := tree.Build(tree.NodeSpec{Kind: tree.KindTemplate, Children: children})
	require.NoError(t, err)
	return tr.Children(0)
}

func TestTypeName_TemplateGetsDefaultName(t *testing.T) {
	tr := tree.MustBuild(tree.NodeSpec{Kind: tree.KindTemplate, Label: "Study"})

	assert.Equal(t, DefaultTemplateName, New().TypeName(tr.Root(), nil))
	assert.Equal(t, "Investigation", New(WithDefaultName("Investigation")).TypeName(tr.Root(), nil))
	assert.Equal(t, DefaultTemplateName, New(WithDefaultName("  ")).TypeName(tr.Root(), nil))
}

func TestTypeName_KindSuffixes(t *testing.T) {
	tr := tree.MustBuild(tree.NodeSpec{Kind: tree.KindTemplate, Children: []tree.NodeSpec{
		{Kind: tree.KindLiteralField, Label: "name"},
		{Kind: tree.KindReferenceField, Label: "disease"},
		{Kind: tree.KindElement, Label: "Person"},
	}})
	children := tr.Children(0)

	o := New()
	assert.Equal(t, "NameField", o.TypeName(children[0], nil))
	assert.Equal(t, "DiseaseField", o.TypeName(children[1], nil))
	assert.Equal(t, "PersonElement", o.TypeName(children[2], nil))

	plain := New(WithFormat(PlainNames))
	assert.Equal(t, "Name", plain.TypeName(children[0], nil))
	assert.Equal(t, "Person", plain.TypeName(children[2], nil))
}

func TestTypeName_ElementRootGetsInstanceSuffix(t *testing.T) {
	tr := tree.MustBuild(tree.NodeSpec{Kind: tree.KindElement, Label: "Person"})
	assert.Equal(t, "PersonInstanceElement", New().TypeName(tr.Root(), nil))
}

func TestTypeName_ScopeWithSameLabel(t *testing.T) {
	nodes := siblings(t, tree.KindElement, "Person", "person")

	var scope *Scope
	scope = scope.With(nodes[0])

	assert.Equal(t, "PersonElement2", New().TypeName(nodes[1], scope))
}

func TestTypeName_DisambiguatesSiblingsInVisitOrder(t *testing.T) {
	nodes := siblings(t, tree.KindLiteralField, "Location", "location", "LOCATION")

	o := New(WithFormat(PlainNames))
	var scope *Scope
	var got []string
	for _, n := range nodes {
		got = append(got, o.TypeName(n, scope))
		scope = scope.With(n)
	}

	assert.Equal(t, []string{"Location", "Location2", "Location3"}, got)
}

func TestTypeName_UniqueWithinScope(t *testing.T) {
	nodes := siblings(t, tree.KindElement, "Address", "ADDRESS", "Phone", "address", "phone", "Address")

	o := New()
	var scope *Scope
	seen := make(map[string]bool)
	for _, n := range nodes {
		name := o.TypeName(n, scope)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
		scope = scope.With(n)
	}
	assert.Len(t, seen, len(nodes))
}

func TestTypeName_Memoized(t *testing.T) {
	nodes := siblings(t, tree.KindElement, "Location", "Location")

	o := New()
	first := o.TypeName(nodes[1], nil)
	assert.Equal(t, "LocationElement", first)

	// A later lookup from a crowded scope returns the cached name.
	var scope *Scope
	scope = scope.With(nodes[0])
	assert.Equal(t, first, o.TypeName(nodes[1], scope))

	// A fresh oracle shares nothing with the first.
	assert.Equal(t, "LocationElement2", New().TypeName(nodes[1], scope))
}

func TestTypeName_MarkerIgnoredForCurrentLabel(t *testing.T) {
	nodes := siblings(t, tree.KindLiteralField, "Title", ">Title")

	var scope *Scope
	scope = scope.With(nodes[0])

	assert.Equal(t, "TitleField2", New().TypeName(nodes[1], scope))
}

func TestConstantName(t *testing.T) {
	nodes := siblings(t, tree.KindLiteralField, "Start Date", "Start-Date", "Start Date", ">Imported")

	o := New()
	assert.Equal(t, "Start_Date", o.ConstantName(nodes[0]))
	assert.Equal(t, "Start_Date2", o.ConstantName(nodes[1]))
	assert.Equal(t, "Start_Date", o.ConstantName(nodes[2]))
	assert.Equal(t, "Imported", o.ConstantName(nodes[3]))

	assert.Equal(t, []Constant{
		{Symbol: "Start_Date", Label: "Start Date"},
		{Symbol: "Start_Date2", Label: "Start-Date"},
		{Symbol: "Imported", Label: "Imported"},
	}, o.Constants())
}

func TestScope(t *testing.T) {
	nodes := siblings(t, tree.KindLiteralField, "A", "B")

	var empty *Scope
	assert.Equal(t, 0, empty.Len())

	one := empty.With(nodes[0])
	two := one.With(nodes[1])
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, 2, two.Len())
	assert.True(t, two.Contains(nodes[0].ID))
	assert.False(t, one.Contains(nodes[1].ID))
	assert.Same(t, two, two.With(nodes[1]))

	var order []string
	for n := range two.Nodes() {
		order = append(order, n.Label)
	}
	assert.Equal(t, []string{"B", "A"}, order)
}

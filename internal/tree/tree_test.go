// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/cedargen/internal/errors"
)

func TestNewCardinality(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr bool
	}{
		{"zero or one", 0, 1, false},
		{"exactly one", 1, 1, false},
		{"unbounded", 0, Unbounded, false},
		{"min above max", 3, 1, true},
		{"negative min", -1, 1, true},
		{"negative max", 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCardinality(tt.min, tt.max)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrCardinalityRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.min, c.Min())
			assert.Equal(t, tt.max, c.Max())
		})
	}
}

func TestCardinality_Predicates(t *testing.T) {
	assert.False(t, ZeroOrOne().IsMultiple())
	assert.True(t, ZeroOrOne().IsSingle())
	assert.True(t, ZeroOrMore().IsMultiple())
	assert.False(t, ZeroOrMore().HasUpperBound())
	assert.True(t, ExactlyOne().HasUpperBound())

	c, err := NewCardinality(1, 3)
	require.NoError(t, err)
	assert.False(t, c.Satisfied(0))
	assert.True(t, c.Satisfied(1))
	assert.True(t, c.Satisfied(3))
	assert.False(t, c.Satisfied(4))
	assert.Equal(t, "[1..3]", c.String())
	assert.Equal(t, "[0..*]", ZeroOrMore().String())
}

func TestBuild_AssignsPreOrderIDs(t *testing.T) {
	tr, err := Build(NodeSpec{
		Kind: KindTemplate,
		Children: []NodeSpec{
			{Kind: KindElement, Label: "Address", Children: []NodeSpec{
				{Kind: KindLiteralField, Label: "Street"},
			}},
			{Kind: KindLiteralField, Label: "Name", Required: true},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 4, tr.Len())

	root := tr.Root()
	assert.Equal(t, NodeID(0), root.ID)
	assert.True(t, root.Root)
	assert.Equal(t, ExactlyOne(), root.Cardinality)

	children := tr.Children(root.ID)
	require.Len(t, children, 2)
	assert.Equal(t, "Address", children[0].Label)
	assert.Equal(t, NodeID(1), children[0].ID)
	assert.Equal(t, "Name", children[1].Label)
	assert.Equal(t, NodeID(3), children[1].ID)
	assert.Equal(t, ZeroOrOne(), children[1].Cardinality)
	assert.False(t, children[1].Root)

	var labels []string
	for n := range tr.All() {
		labels = append(labels, n.Label)
	}
	assert.Equal(t, []string{"", "Address", "Street", "Name"}, labels)

	var below []string
	for n := range tr.Descendants(1) {
		below = append(below, n.Label)
	}
	assert.Equal(t, []string{"Street"}, below)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		spec    NodeSpec
		wantErr error
		wantMsg string
	}{
		{
			name:    "field root",
			spec:    NodeSpec{Kind: KindLiteralField, Label: "Name"},
			wantErr: ErrInvalidRoot,
		},
		{
			name: "blank child label",
			spec: NodeSpec{Kind: KindTemplate, Children: []NodeSpec{
				{Kind: KindElement, Label: "Study", Children: []NodeSpec{
					{Kind: KindLiteralField, Label: "  "},
				}},
			}},
			wantErr: ErrBlankLabel,
			wantMsg: "children[0].children[0]",
		},
		{
			name: "marker-only label",
			spec: NodeSpec{Kind: KindTemplate, Children: []NodeSpec{
				{Kind: KindLiteralField, Label: ">"},
			}},
			wantErr: ErrBlankLabel,
		},
		{
			name: "nested template",
			spec: NodeSpec{Kind: KindTemplate, Children: []NodeSpec{
				{Kind: KindTemplate, Label: "Inner"},
			}},
			wantErr: ErrNestedTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestBuild_ElementRootAndExplicitCardinality(t *testing.T) {
	tr, err := Build(NodeSpec{
		Kind:        KindElement,
		Label:       "Person",
		Cardinality: Ptr(ZeroOrMore()),
		Children: []NodeSpec{
			{Kind: KindReferenceField, Label: "Homepage", InputKind: InputLink},
			{Kind: KindLiteralField, Label: "Notes", InputKind: InputAttributeValue},
		},
	})
	require.NoError(t, err)
	assert.True(t, tr.Root().IsMultiple())

	children := tr.Children(0)
	assert.True(t, children[0].IsLinkOnly())
	assert.True(t, children[1].IsAttributeValue())
	assert.Equal(t, 2, tr.Root().NumChildren())
}

func TestTree_ChildrenAreCopies(t *testing.T) {
	tr := MustBuild(NodeSpec{Kind: KindTemplate, Children: []NodeSpec{
		{Kind: KindLiteralField, Label: "Name"},
	}})

	children := tr.Children(0)
	children[0].Label = "Changed"
	assert.Equal(t, "Name", tr.Children(0)[0].Label)

	_, ok := tr.Node(42)
	assert.False(t, ok)
	assert.Nil(t, tr.Children(42))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "template", KindTemplate.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.True(t, KindReferenceField.IsField())
	assert.False(t, KindElement.IsField())
	assert.True(t, KindElement.IsStructural())
	assert.False(t, KindUnknown.IsStructural())
}

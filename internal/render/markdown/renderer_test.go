// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"strings"
	"testing"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/render"
	"github.com/dacolabs/cedargen/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSpec(t *testing.T, spec tree.NodeSpec) string {
	t.Helper()
	tr, err := tree.Build(spec)
	require.NoError(t, err)
	f, err := compile.Compile(tr)
	require.NoError(t, err)

	out, err := (&Renderer{}).Render(f, render.Options{})
	require.NoError(t, err)
	return string(out)
}

func TestRender_SimpleTemplate(t *testing.T) {
	result := renderSpec(t, tree.NodeSpec{
		Kind:        tree.KindTemplate,
		Description: "Describes a study",
		Children: []tree.NodeSpec{
			{Kind: tree.KindLiteralField, Label: "Title", Required: true, Description: "Official | short title"},
			{Kind: tree.KindLiteralField, Label: "Keyword", Cardinality: tree.Ptr(tree.ZeroOrMore())},
		},
	})

	assert.True(t, strings.HasPrefix(result, "# MetadataInstance\n\nDescribes a study\n"))
	assert.Contains(t, result, "## MetadataInstance")
	assert.Contains(t, result, "| `id` | IRI | Yes | `@id` |  |")
	assert.Contains(t, result, "| `pavCreatedOn` | date-time | No | `pav:createdOn` |  |")
	assert.Contains(t, result, "| `title` | [TitleField](#TitleField) | Yes | `Title` | Official \\| short title |")
	assert.Contains(t, result, "| `keyword` | [KeywordFieldList](#KeywordFieldList) | No | `Keyword` |  |")
	assert.Contains(t, result, "*container* of [KeywordField](#KeywordField), [0..*]")
	assert.Contains(t, result, "| `schema` | http://schema.org/ |")
	assert.Contains(t, result, "| `Keyword` | Keyword |")
}

func TestRender_DeclarationOrder(t *testing.T) {
	result := renderSpec(t, tree.NodeSpec{
		Kind:  tree.KindElement,
		Label: "Person",
		Children: []tree.NodeSpec{
			{Kind: tree.KindElement, Label: "Address", Children: []tree.NodeSpec{
				{Kind: tree.KindLiteralField, Label: "City", Datatype: "xsd:string"},
			}},
			{Kind: tree.KindReferenceField, Label: "Homepage", InputKind: tree.InputLink},
			{Kind: tree.KindLiteralField, Label: "Extra", InputKind: tree.InputAttributeValue},
		},
	})

	personIdx := strings.Index(result, "## PersonInstanceElement")
	addressIdx := strings.Index(result, "## AddressElement")
	cityIdx := strings.Index(result, "## CityField")

	assert.Greater(t, personIdx, 0)
	assert.Less(t, personIdx, addressIdx)
	assert.Less(t, addressIdx, cityIdx)

	assert.Contains(t, result, "*structural*, accepts attribute values")
	assert.Contains(t, result, "*literal*, datatype `xsd:string`")
	assert.Contains(t, result, "*reference*, link only")
	assert.Contains(t, result, "| `attributeValues` | map(string) | Yes |  |  |")
}

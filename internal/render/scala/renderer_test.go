// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package scala

import (
	"testing"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/render"
	"github.com/dacolabs/cedargen/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, spec tree.NodeSpec, opts render.Options) string {
	t.Helper()
	tr, err := tree.Build(spec)
	require.NoError(t, err)
	f, err := compile.Compile(tr)
	require.NoError(t, err)

	out, err := (&Renderer{}).Render(f, opts)
	require.NoError(t, err)
	return string(out)
}

func TestRender_Template(t *testing.T) {
	card, err := tree.NewCardinality(1, 3)
	require.NoError(t, err)

	out := renderString(t, tree.NodeSpec{
		Kind: tree.KindTemplate,
		Children: []tree.NodeSpec{
			{Kind: tree.KindLiteralField, Label: "Title", Required: true, PropertyIRI: "http://purl.org/dc/terms/title", Description: "Study title"},
			{Kind: tree.KindLiteralField, Label: "Age (years)", Datatype: "xsd:decimal"},
			{Kind: tree.KindReferenceField, Label: "Disease", Required: true, Cardinality: &card},
			{Kind: tree.KindReferenceField, Label: "Homepage", InputKind: tree.InputLink},
			{Kind: tree.KindLiteralField, Label: "Extra", InputKind: tree.InputAttributeValue},
		},
	}, render.Options{Package: "out/models", Source: "testdata/study.json"})

	assert.Contains(t, out, "// Code generated by cedargen from study.json. DO NOT EDIT.")
	assert.Contains(t, out, "package models")
	assert.Contains(t, out, "def newIdentifier(): String = IRIPrefix + java.util.UUID.randomUUID().toString")
	assert.Contains(t, out, "object FieldNames {")
	assert.Contains(t, out, `val Title: String = "Title"`)
	assert.Contains(t, out, "val `Age_(years)`: String = \"Age (years)\"")

	assert.Contains(t, out, "final case class MetadataInstance(")
	assert.Contains(t, out, "  id: String,\n  title: TitleField,\n  disease: DiseaseFieldList,\n  attributeValues: Map[String, String] = Map.empty,\n")
	assert.Contains(t, out, "  pavCreatedOn: Option[java.time.Instant] = None,")
	assert.Contains(t, out, "  ageYears: Option[AgeYearsField] = None,")
	assert.Contains(t, out, "  homepage: Option[HomepageField] = None\n)")
	assert.Contains(t, out, "def isEmpty: Boolean = title.isEmpty && disease.forall(_.isEmpty) && attributeValues.isEmpty && ageYears.forall(_.isEmpty) && homepage.forall(_.isEmpty)")
	assert.Contains(t, out, "def empty: MetadataInstance = MetadataInstance(id = newIdentifier(), title = TitleField.empty, disease = DiseaseFieldList.empty)")
	assert.Contains(t, out, `"Title" -> "http://purl.org/dc/terms/title"`)
	assert.Contains(t, out, `"pav:createdBy" -> Map("@type" -> "@id")`)
	assert.Contains(t, out, `"title" -> "Title"`)
	assert.Contains(t, out, "// Study title")

	assert.Contains(t, out, "final case class AgeYearsField(\n  value: Option[String] = None\n)")
	assert.Contains(t, out, `val Datatype: String = "xsd:decimal"`)
	assert.Contains(t, out, "def isEmpty: Boolean = value.forall(_.isEmpty)")

	assert.Contains(t, out, "final case class DiseaseField(\n  id: Option[String] = None,\n  label: Option[String] = None\n)")
	assert.Contains(t, out, "type DiseaseFieldList = List[DiseaseField]")
	assert.Contains(t, out, "val MinItems: Int = 1")
	assert.Contains(t, out, "val MaxItems: Int = 3")
	assert.Contains(t, out, "def empty: DiseaseFieldList = List(DiseaseField.empty)")

	assert.Contains(t, out, "def label: Option[String] = None")
	assert.True(t, len(out) > 0 && out[len(out)-1] == '\n')
}

func TestRender_UnboundedOptionalList(t *testing.T) {
	out := renderString(t, tree.NodeSpec{
		Kind:  tree.KindElement,
		Label: "Address",
		Children: []tree.NodeSpec{
			{Kind: tree.KindLiteralField, Label: "City", Cardinality: tree.Ptr(tree.ZeroOrMore())},
		},
	}, render.Options{})

	assert.Contains(t, out, "package cedar")
	assert.Contains(t, out, "final case class AddressInstanceElement(")
	assert.Contains(t, out, "  city: CityFieldList = Nil\n)")
	assert.Contains(t, out, "val MaxItems: Int = -1")
	assert.Contains(t, out, "def empty: CityFieldList = Nil")
	assert.Contains(t, out, "def empty: AddressInstanceElement = AddressInstanceElement(id = newIdentifier())")
}

func TestRender_EscapesNames(t *testing.T) {
	out := renderString(t, tree.NodeSpec{
		Kind: tree.KindTemplate,
		Children: []tree.NodeSpec{
			{Kind: tree.KindLiteralField, Label: "Type"},
			{Kind: tree.KindLiteralField, Label: "Copy"},
		},
	}, render.Options{})

	assert.Contains(t, out, "  `type`: Option[TypeField] = None,")
	assert.Contains(t, out, "  copyValue: Option[CopyField] = None\n)")
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\\b", `"a\\b"`},
		{"line\nbreak", `"line\nbreak"`},
		{"bell\a", `"bell\u0007"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quote(tt.in))
		})
	}
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "title", ident("title"))
	assert.Equal(t, "`val`", ident("val"))
	assert.Equal(t, "`Age_(years)`", ident("Age_(years)"))
	assert.Equal(t, "`2nd`", ident("2nd"))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "models", packageName("out/models"))
	assert.Equal(t, "cedar", packageName(""))
	assert.Equal(t, "cedar", packageName("object"))
}

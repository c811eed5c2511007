// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dacolabs/cedargen/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(nodes []tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func TestLoadFile_Template(t *testing.T) {
	tr, err := LoadFile(filepath.Join("testdata", "study.json"))
	require.NoError(t, err)

	root := tr.Root()
	assert.Equal(t, tree.KindTemplate, root.Kind)
	assert.Equal(t, "Study", root.Label)
	assert.Equal(t, "Describes a study", root.Description)
	assert.Equal(t, "https://repo.metadatacenter.org/templates/0001", root.Identifier)

	children := tr.Children(root.ID)
	assert.Equal(t, []string{"Title", "Disease", "Author", "Extra"}, labels(children))

	title := children[0]
	assert.Equal(t, tree.KindLiteralField, title.Kind)
	assert.True(t, title.Required)
	assert.Equal(t, "http://purl.org/dc/terms/title", title.PropertyIRI)
	assert.False(t, title.IsMultiple())

	disease := children[1]
	assert.Equal(t, tree.KindReferenceField, disease.Kind)
	assert.Equal(t, "Primary diagnosis", disease.Description)
	assert.False(t, disease.Required)

	author := children[2]
	assert.Equal(t, tree.KindElement, author.Kind)
	assert.Equal(t, 1, author.Cardinality.Min())
	assert.False(t, author.Cardinality.HasUpperBound())
	assert.Equal(t, "http://example.org/author", author.PropertyIRI)

	members := tr.Children(author.ID)
	assert.Equal(t, []string{"Name", "Age", "Homepage"}, labels(members))
	assert.True(t, members[0].Required)
	assert.Equal(t, "http://schema.org/name", members[0].PropertyIRI)
	assert.Equal(t, "xsd:decimal", members[1].Datatype)
	assert.Equal(t, tree.KindReferenceField, members[2].Kind)
	assert.True(t, members[2].IsLinkOnly())

	assert.True(t, children[3].IsAttributeValue())
}

func TestLoadFile_YAMLElement(t *testing.T) {
	tr, err := LoadFile(filepath.Join("testdata", "element.yaml"))
	require.NoError(t, err)

	root := tr.Root()
	assert.Equal(t, tree.KindElement, root.Kind)
	assert.Equal(t, "Address", root.Label)

	children := tr.Children(root.ID)
	assert.Equal(t, []string{"Street", "City", "Visited"}, labels(children))
	assert.True(t, children[1].Required)

	visited := children[2]
	assert.Equal(t, "xsd:date", visited.Datatype)
	assert.True(t, visited.IsMultiple())
	assert.Equal(t, 3, visited.Cardinality.Max())
}

func TestParseJSON_RootName(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "study.json"))
	require.NoError(t, err)

	tr, err := ParseJSON(data, WithRootName("Investigation"))
	require.NoError(t, err)
	assert.Equal(t, "Investigation", tr.Root().Label)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "no artifact type",
			input:   `{"type": "object"}`,
			wantErr: ErrUnsupportedArtifact,
		},
		{
			name: "unknown child type",
			input: `{"@type": "https://schema.metadatacenter.org/core/Template", "properties": {
				"X": {"@type": "https://example.org/Widget", "schema:name": "X"}}}`,
			wantErr: ErrUnsupportedArtifact,
		},
		{
			name:    "field root",
			input:   `{"@type": "https://schema.metadatacenter.org/core/TemplateField", "schema:name": "Solo"}`,
			wantErr: tree.ErrInvalidRoot,
		},
		{
			name: "bad cardinality",
			input: `{"@type": "https://schema.metadatacenter.org/core/Template", "properties": {
				"X": {"type": "array", "minItems": 4, "maxItems": 2, "items": {
					"@type": "https://schema.metadatacenter.org/core/TemplateField", "schema:name": "X"}}}}`,
			wantErr: tree.ErrCardinalityRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"@type": `))
	assert.Error(t, err)
}

func TestYAMLToJSON_KeepsOrder(t *testing.T) {
	out, err := yamlToJSON([]byte("b: 1\na: [x, true, ~]\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":1,"a":["x",true,null]}`, string(out))
	assert.Equal(t, `{"b":1,"a":["x",true,null]}`, string(out))
}

func TestExtractKeyOrder(t *testing.T) {
	order := extractKeyOrder([]byte(`{"properties": {"z": {}, "a": {"items": {"properties": {"q": 1, "p": 2}}}}}`))
	assert.Equal(t, []string{"z", "a"}, order["properties"])
	assert.Equal(t, []string{"q", "p"}, order["properties.a.items.properties"])
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package ingest reads CEDAR template artifacts into schema trees.
package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/logger"
	"github.com/dacolabs/cedargen/internal/tree"
)

// ErrUnsupportedArtifact is returned for a schema that is not a CEDAR
// template, element or field.
var ErrUnsupportedArtifact = errors.New("unsupported artifact")

// CEDAR artifact type suffixes.
const (
	typeTemplate        = "Template"
	typeElement         = "TemplateElement"
	typeField           = "TemplateField"
	typeStaticField     = "StaticTemplateField"
	valueConstraintsKey = "_valueConstraints"
	uiKey               = "_ui"
)

// referenceConstraints mark a field whose values are IRIs.
var referenceConstraints = []string{"classes", "ontologies", "branches", "valueSets"}

// Option configures ingestion.
type Option func(*parser)

// WithRootName sets the label of the root node instead of its schema:name.
func WithRootName(name string) Option {
	return func(p *parser) { p.rootName = name }
}

type parser struct {
	rootName string
	order    map[string][]string
}

// LoadFile reads a CEDAR artifact from path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadFile(path string, opts ...Option) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read artifact")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data, opts...)
	default:
		return ParseJSON(data, opts...)
	}
}

// ParseYAML decodes a CEDAR artifact written as YAML.
func ParseYAML(data []byte, opts ...Option) (*tree.Tree, error) {
	raw, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}
	return ParseJSON(raw, opts...)
}

// ParseJSON decodes a CEDAR artifact and builds its tree.
func ParseJSON(data []byte, opts ...Option) (*tree.Tree, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrap(err, "failed to decode artifact")
	}

	p := &parser{order: extractKeyOrder(data)}
	for _, opt := range opts {
		opt(p)
	}

	spec, ok, err := p.artifact(&schema, "", true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedArtifact, "root is a static field")
	}
	t, err := tree.Build(spec)
	if err != nil {
		return nil, errors.Wrap(err, "invalid artifact")
	}
	logger.Debugw("ingested artifact", "label", t.Root().Label, "nodes", t.Len())
	return t, nil
}

// artifact converts s, found at path, to a node spec. It reports false for
// presentational fields that carry no value.
func (p *parser) artifact(s *jsonschema.Schema, path string, root bool) (tree.NodeSpec, bool, error) {
	typ := artifactType(s)
	where := path
	if where == "" {
		where = "root"
	}

	spec := tree.NodeSpec{
		Identifier:  stringOf(s.Extra["@id"]),
		Label:       stringOf(s.Extra["schema:name"]),
		Description: stringOf(s.Extra["schema:description"]),
	}
	if spec.Label == "" {
		spec.Label = s.Title
	}
	if spec.Description == "" {
		spec.Description = s.Description
	}
	if root && p.rootName != "" {
		spec.Label = p.rootName
	}

	switch {
	case strings.HasSuffix(typ, typeStaticField):
		return tree.NodeSpec{}, false, nil
	case strings.HasSuffix(typ, typeField):
		p.field(s, &spec)
		return spec, true, nil
	case strings.HasSuffix(typ, typeElement):
		spec.Kind = tree.KindElement
	case strings.HasSuffix(typ, typeTemplate):
		spec.Kind = tree.KindTemplate
	default:
		return tree.NodeSpec{}, false, errors.Wrapf(ErrUnsupportedArtifact, "%s has @type %q", where, typ)
	}

	children, err := p.children(s, path)
	if err != nil {
		return tree.NodeSpec{}, false, err
	}
	spec.Children = children
	return spec, true, nil
}

func (p *parser) field(s *jsonschema.Schema, spec *tree.NodeSpec) {
	ui := objectOf(s.Extra[uiKey])
	vc := objectOf(s.Extra[valueConstraintsKey])

	spec.InputKind = tree.InputKind(stringOf(ui["inputType"]))
	spec.Kind = tree.KindLiteralField
	if spec.InputKind == tree.InputLink {
		spec.Kind = tree.KindReferenceField
	}
	for _, key := range referenceConstraints {
		if list, ok := vc[key].([]any); ok && len(list) > 0 {
			spec.Kind = tree.KindReferenceField
		}
	}

	spec.Required, _ = vc["requiredValue"].(bool)
	spec.Datatype = stringOf(vc["numberType"])
	if spec.Datatype == "" {
		spec.Datatype = stringOf(vc["temporalType"])
	}
}

func (p *parser) children(s *jsonschema.Schema, path string) ([]tree.NodeSpec, error) {
	propsPath := "properties"
	if path != "" {
		propsPath = path + ".properties"
	}

	var iris map[string]*jsonschema.Schema
	if ctx := s.Properties["@context"]; ctx != nil {
		iris = ctx.Properties
	}

	var children []tree.NodeSpec
	for _, key := range p.childKeys(s, propsPath) {
		prop := s.Properties[key]
		childPath := propsPath + "." + key

		var card *tree.Cardinality
		if isArray(prop) && prop.Items != nil {
			lo, hi := 0, tree.Unbounded
			if prop.MinItems != nil {
				lo = *prop.MinItems
			}
			if prop.MaxItems != nil {
				hi = *prop.MaxItems
			}
			c, err := tree.NewCardinality(lo, hi)
			if err != nil {
				return nil, errors.Wrapf(err, "%s", childPath)
			}
			card = &c
			prop = prop.Items
			childPath += ".items"
		}

		child, ok, err := p.artifact(prop, childPath, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		child.Cardinality = card
		if iri := iris[key]; iri != nil && len(iri.Enum) > 0 {
			child.PropertyIRI = stringOf(iri.Enum[0])
		}
		children = append(children, child)
	}
	return children, nil
}

// childKeys returns the child property names of s in the order given by
// _ui.order, falling back to document order.
func (p *parser) childKeys(s *jsonschema.Schema, propsPath string) []string {
	var keys []string
	if order, ok := objectOf(s.Extra[uiKey])["order"].([]any); ok {
		for _, k := range order {
			if key := stringOf(k); s.Properties[key] != nil {
				keys = append(keys, key)
			}
		}
		return keys
	}
	for _, key := range p.order[propsPath] {
		if strings.HasPrefix(key, "@") || strings.Contains(key, ":") || s.Properties[key] == nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func artifactType(s *jsonschema.Schema) string {
	return stringOf(s.Extra["@type"])
}

func isArray(s *jsonschema.Schema) bool {
	return s.Type == "array" || slices.Contains(s.Types, "array")
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func objectOf(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

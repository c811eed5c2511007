// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package ldcontext assembles the JSON-LD context of structural declarations.
package ldcontext

import (
	"bytes"
	"encoding/json"

	"github.com/dacolabs/cedargen/internal/casing"
	"github.com/dacolabs/cedargen/internal/tree"
)

// Entry is one term of a context. Exactly one of IRI and Type is set: IRI for
// property and prefix bindings, Type for datatype annotations.
type Entry struct {
	Symbol string // constant name in generated code; equals Term for fixed entries
	Term   string
	IRI    string
	Type   string
}

// Value returns the JSON-LD value of the entry.
func (e Entry) Value() any {
	if e.Type != "" {
		return map[string]string{"@type": e.Type}
	}
	return e.IRI
}

// Map is an ordered context keyed by symbol.
type Map struct {
	entries []Entry
	index   map[string]int
}

// SymbolFunc returns the constant name of a node.
type SymbolFunc func(tree.Node) string

// Prefixes bound in every root context.
var Prefixes = []Entry{
	{Symbol: "schema", Term: "schema", IRI: "http://schema.org/"},
	{Symbol: "xsd", Term: "xsd", IRI: "http://www.w3.org/2001/XMLSchema#"},
	{Symbol: "skos", Term: "skos", IRI: "http://www.w3.org/2004/02/skos/core#"},
	{Symbol: "rdfs", Term: "rdfs", IRI: "http://www.w3.org/2000/01/rdf-schema#"},
}

// Annotations are the datatype annotations of the provenance properties.
var Annotations = []Entry{
	{Symbol: "pav:createdOn", Term: "pav:createdOn", Type: "xsd:dateTime"},
	{Symbol: "pav:createdBy", Term: "pav:createdBy", Type: "@id"},
	{Symbol: "rdfs:label", Term: "rdfs:label", Type: "xsd:string"},
	{Symbol: "oslc:modifiedBy", Term: "oslc:modifiedBy", Type: "@id"},
	{Symbol: "pav:derivedFrom", Term: "pav:derivedFrom", Type: "@id"},
	{Symbol: "skos:notation", Term: "skos:notation", Type: "xsd:string"},
	{Symbol: "schema:isBasedOn", Term: "schema:isBasedOn", Type: "@id"},
	{Symbol: "schema:description", Term: "schema:description", Type: "xsd:string"},
	{Symbol: "pav:lastUpdatedOn", Term: "pav:lastUpdatedOn", Type: "xsd:dateTime"},
	{Symbol: "schema:name", Term: "schema:name", Type: "xsd:string"},
}

// Assemble builds the context of the structural node id. Children with a
// property IRI contribute one entry each; the root also receives Prefixes
// and Annotations. Field nodes have an empty context.
func Assemble(t *tree.Tree, id tree.NodeID, symbol SymbolFunc) Map {
	m := Map{index: make(map[string]int)}
	n, ok := t.Node(id)
	if !ok || !n.Kind.IsStructural() {
		return m
	}
	for _, child := range t.Children(id) {
		if child.PropertyIRI == "" {
			continue
		}
		m.add(Entry{
			Symbol: symbol(child),
			Term:   casing.StripMarker(child.Label),
			IRI:    child.PropertyIRI,
		})
	}
	if n.Root {
		for _, e := range Prefixes {
			m.add(e)
		}
		for _, e := range Annotations {
			m.add(e)
		}
	}
	return m
}

// add inserts e, replacing an earlier entry with the same symbol in place.
func (m *Map) add(e Entry) {
	if i, ok := m.index[e.Symbol]; ok {
		m.entries[i] = e
		return
	}
	m.index[e.Symbol] = len(m.entries)
	m.entries = append(m.entries, e)
}

// Len returns the number of entries.
func (m Map) Len() int {
	return len(m.entries)
}

// Lookup returns the entry stored under symbol.
func (m Map) Lookup(symbol string) (Entry, bool) {
	i, ok := m.index[symbol]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Entries returns the entries in insertion order.
func (m Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MarshalJSON encodes the context as a JSON object in entry order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Term)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package scala renders declaration forests as Scala 3 case classes.
package scala

import (
	"strings"
	"unicode"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/render"
)

type resolver struct{}

func (r *resolver) ScalarType(kind compile.TypeKind) string {
	if kind == compile.TypeTimestamp {
		return "java.time.Instant"
	}
	return "String"
}

func (r *resolver) ListType(elemType string) string {
	return "List[" + elemType + "]"
}

func (r *resolver) MapType() string {
	return "Map[String, String]"
}

func (r *resolver) DeclType(typeName string) string {
	return typeName
}

func (r *resolver) FormatTypeName(name string) string {
	return identifier(name)
}

// ReservedNames lists the top-level and standard library names a generated
// file refers to.
func (r *resolver) ReservedNames() []string {
	return []string{
		"IRIPrefix", "FieldNames", "newIdentifier",
		"Any", "Boolean", "Int", "List", "Map", "Nil", "None", "Option", "Some", "String",
	}
}

func (r *resolver) DerivedNames(string) []string {
	return nil
}

// memberNames are declared on every case class and cannot be field names.
var memberNames = map[string]bool{
	"isEmpty":         true,
	"copy":            true,
	"equals":          true,
	"hashCode":        true,
	"toString":        true,
	"canEqual":        true,
	"productArity":    true,
	"productElement":  true,
	"productIterator": true,
	"productPrefix":   true,
	"getClass":        true,
}

func (r *resolver) EnrichField(f *render.Field) {
	if memberNames[f.Name] {
		f.Name += "Value"
	}
	switch {
	case f.Role == "attributes":
		f.Tag = " = Map.empty"
	case f.Nullable && f.Container:
		f.Tag = " = Nil"
	case f.Nullable:
		f.Type = "Option[" + f.Type + "]"
		f.Tag = " = None"
	}
}

var keywords = map[string]bool{
	"abstract": true, "case": true, "catch": true, "class": true, "def": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "final": true, "finally": true, "for": true, "given": true,
	"if": true, "implicit": true, "import": true, "lazy": true, "match": true,
	"new": true, "null": true, "object": true, "override": true, "package": true,
	"private": true, "protected": true, "return": true, "sealed": true, "super": true,
	"then": true, "this": true, "throw": true, "trait": true, "true": true,
	"try": true, "type": true, "val": true, "var": true, "while": true,
	"with": true, "yield": true,
}

// ident returns s as a Scala identifier, wrapped in backticks when s is a
// keyword or contains characters a plain identifier cannot.
func ident(s string) string {
	if s != "" && !keywords[s] && identifier(s) == s {
		return s
	}
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

// identifier replaces runes that are neither letters, digits nor underscores
// with underscores. A leading digit gets an "N" prefix.
func identifier(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case i == 0 && unicode.IsDigit(r):
			sb.WriteByte('N')
			sb.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "X"
	}
	return sb.String()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gotypes

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/render"
)

type resolver struct{}

func (r *resolver) ScalarType(kind compile.TypeKind) string {
	if kind == compile.TypeTimestamp {
		return "time.Time"
	}
	return "string"
}

func (r *resolver) ListType(elemType string) string {
	return "[]" + elemType
}

func (r *resolver) MapType() string {
	return "map[string]string"
}

func (r *resolver) DeclType(typeName string) string {
	return typeName
}

func (r *resolver) FormatTypeName(name string) string {
	return identifier(name)
}

// ReservedNames lists the package-level identifiers every generated file
// declares or imports.
func (r *resolver) ReservedNames() []string {
	return []string{
		"IRIPrefix", "FieldNames", "newIdentifier", "marshalObject", "collectAttributes",
		"bytes", "rand", "json", "fmt", "sort", "time",
	}
}

// DerivedNames returns the constructor declared next to a type.
func (r *resolver) DerivedNames(typeName string) []string {
	return []string{"New" + typeName}
}

// methodNames are declared on generated structs and cannot be field names.
var methodNames = map[string]bool{
	"IsEmpty":       true,
	"MarshalJSON":   true,
	"UnmarshalJSON": true,
	"JSONLDContext": true,
}

func (r *resolver) EnrichField(f *render.Field) {
	f.Name = toPascalCase(f.Name)
	if methodNames[f.Name] {
		f.Name += "Value"
	}
	if f.Role == "attributes" {
		f.Tag = "`json:\"-\"`"
		return
	}
	tag := f.Key
	if f.Nullable {
		tag += ",omitempty"
		if !f.Container {
			f.Type = "*" + f.Type
		}
	}
	f.Tag = "`json:" + strconv.Quote(tag) + "`"
}

// Common Go acronyms that should be fully uppercased.
var acronyms = map[string]string{
	"id":   "ID",
	"iri":  "IRI",
	"url":  "URL",
	"uri":  "URI",
	"doi":  "DOI",
	"http": "HTTP",
	"api":  "API",
	"json": "JSON",
	"xml":  "XML",
	"html": "HTML",
}

// toPascalCase converts a lower-camel member name to an exported Go name.
// Common acronyms, optionally followed by a counter, are upper-cased whole.
func toPascalCase(s string) string {
	base := strings.TrimRightFunc(s, unicode.IsDigit)
	if acronym, ok := acronyms[strings.ToLower(base)]; ok {
		return acronym + s[len(base):]
	}
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return identifier(string(r))
}

// identifier makes s a valid Go identifier: runes that are neither letters,
// digits nor underscores become underscores, and a leading digit gets an
// "N" prefix.
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

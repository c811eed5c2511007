// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pydantic renders declaration forests as Pydantic BaseModel definitions.
package pydantic

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
		return "datetime.datetime"
	}
	return "str"
}

func (r *resolver) ListType(elemType string) string {
	return "list[" + elemType + "]"
}

func (r *resolver) MapType() string {
	return "dict[str, str]"
}

func (r *resolver) DeclType(typeName string) string {
	return typeName
}

func (r *resolver) FormatTypeName(name string) string {
	return identifier(name, "N")
}

// ReservedNames lists the module-level names a generated file defines or
// imports.
func (r *resolver) ReservedNames() []string {
	return []string{
		"FieldNames", "IRI_PREFIX", "CARDINALITY", "new_identifier", "is_cardinality_satisfied",
		"Any", "BaseModel", "ClassVar", "ConfigDict", "Field", "Optional",
		"datetime", "uuid", "model_serializer", "model_validator",
		"None", "True", "False",
	}
}

func (r *resolver) DerivedNames(string) []string {
	return nil
}

func (r *resolver) EnrichField(f *render.Field) {
	f.Name = attributeName(f.Name)
	alias := "alias=" + strconv.Quote(f.Key)
	switch {
	case f.Role == "attributes":
	case f.Nullable && f.Container:
		f.Tag = " = Field(default_factory=list, " + alias + ")"
	case f.Nullable:
		f.Type = "Optional[" + f.Type + "]"
		f.Tag = " = Field(default=None, " + alias + ")"
	default:
		f.Tag = " = Field(" + alias + ")"
	}
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// modelNames are attributes of generated models and cannot be field names.
var modelNames = map[string]bool{
	"model_config": true, "model_fields": true, "model_extra": true, "model_dump": true,
	"model_validate": true, "model_copy": true, "copy": true, "dict": true, "json": true,
	"schema": true, "schema_json": true, "construct": true, "validate": true,
	"parse_obj": true, "parse_raw": true, "parse_file": true, "from_orm": true,
	"update_forward_refs": true, "empty": true, "is_empty": true, "serialize": true,
	"collect_attributes": true, "JSONLD_CONTEXT": true, "DATATYPE": true,
}

// attributeName converts a lower-camel member name to a snake_case Python
// attribute name.
func attributeName(s string) string {
	name := identifier(snakeCase(s), "n_")
	if keywords[name] || modelNames[name] {
		name += "_"
	}
	return name
}

// snakeCase splits s at case boundaries and joins the lowercased words with
// underscores. Runs of capitals stay one word.
func snakeCase(s string) string {
	r := []rune(s)
	var sb strings.Builder
	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) {
			prev := r[i-1]
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(c))
	}
	return sb.String()
}

// identifier replaces runes that are neither letters, digits nor underscores
// with underscores. A leading digit gets prefix.
func identifier(s, prefix string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case i == 0 && unicode.IsDigit(r):
			sb.WriteString(prefix)
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

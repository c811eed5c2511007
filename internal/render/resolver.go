// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import "github.com/dacolabs/cedargen/internal/compile"

// TypeResolver converts member types to target-language type strings and naming conventions.
// Each renderer implements this interface to control how declarations map to its output format.
type TypeResolver interface {
	// ScalarType maps an identifier, string or timestamp member to a target type.
	ScalarType(kind compile.TypeKind) string

	// ListType wraps an element type string in a sequence type.
	ListType(elemType string) string

	// MapType returns the type of the attribute map.
	MapType() string

	// DeclType returns the type string for a reference to a declaration.
	DeclType(typeName string) string

	// FormatTypeName formats a forest-unique declaration name for the target.
	FormatTypeName(name string) string

	// EnrichField applies target-specific post-processing to a resolved field.
	// It may rename the field, wrap its type for nullability or set its tag.
	// Called once per field after type resolution, before template execution.
	EnrichField(f *Field)
}

// NameReserver is implemented by resolvers whose output declares identifiers
// besides the type names, such as constructors or helper functions.
type NameReserver interface {
	// ReservedNames lists the identifiers the output always declares.
	ReservedNames() []string

	// DerivedNames lists the identifiers the output declares for a type name.
	DerivedNames(typeName string) []string
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/render"
)

type resolver struct{}

func (r *resolver) ScalarType(kind compile.TypeKind) string {
	switch kind {
	case compile.TypeIdentifier:
		return "IRI"
	case compile.TypeTimestamp:
		return "date-time"
	default:
		return "string"
	}
}

func (r *resolver) ListType(elemType string) string {
	return "array(" + elemType + ")"
}

func (r *resolver) MapType() string {
	return "map(string)"
}

func (r *resolver) DeclType(typeName string) string {
	return "[" + typeName + "](#" + typeName + ")"
}

func (r *resolver) FormatTypeName(name string) string {
	return name
}

func (r *resolver) EnrichField(f *render.Field) {}

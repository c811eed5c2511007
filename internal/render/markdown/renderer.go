// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown renders declaration forests as markdown documentation.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/render"
)

//go:embed markdown.md.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"bounds": bounds,
	"cell":   cell,
}

var tmpl = template.Must(template.New("markdown.md.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.md.tmpl"))

// Renderer renders forests to markdown documentation.
type Renderer struct{}

// Name returns the format identifier.
func (r *Renderer) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (r *Renderer) FileExtension() string {
	return ".md"
}

// Render converts a forest to markdown documentation.
func (r *Renderer) Render(f *compile.Forest, _ render.Options) ([]byte, error) {
	data, err := render.Prepare(f, &resolver{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare forest")
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.md.tmpl", data); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// bounds formats the cardinality of a container, e.g. "[1..*]".
func bounds(t render.TypeDef) string {
	if !t.Bounded() {
		return fmt.Sprintf("[%d..*]", t.MinItems)
	}
	return fmt.Sprintf("[%d..%d]", t.MinItems, t.MaxItems)
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

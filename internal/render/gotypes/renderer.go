// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package gotypes renders declaration forests as Go struct definitions.
package gotypes

import (
	"bytes"
	"embed"
	"go/format"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/render"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"quote":      strconv.Quote,
	"comment":    comment,
	"attributes": attributesField,
}

var tmpl = template.Must(template.New("gotypes.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "gotypes.go.tmpl"))

// Renderer renders forests to Go source files.
type Renderer struct{}

// Name returns the format identifier.
func (r *Renderer) Name() string {
	return "gotypes"
}

// FileExtension returns the file extension for Go source files.
func (r *Renderer) FileExtension() string {
	return ".go"
}

// Render converts a forest to formatted Go source.
func (r *Renderer) Render(f *compile.Forest, opts render.Options) ([]byte, error) {
	data, err := render.Prepare(f, &resolver{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare forest")
	}

	data.Extra["Package"] = packageName(opts.Package)
	if opts.Source != "" {
		data.Extra["Source"] = filepath.Base(opts.Source)
	}
	data.Extra["IRIPrefix"] = compile.IRIPrefix
	data.Extra["Constants"] = constants(data.Constants)

	// checks if any field type contains time.Time.
	data.Extra["NeedsTimeImport"] = false
	for _, td := range append([]render.TypeDef{data.Root}, data.Types...) {
		for _, field := range td.Fields {
			if strings.Contains(field.Type, "time.Time") {
				data.Extra["NeedsTimeImport"] = true
			}
		}
	}

	data.Root.Context = render.UniqueTerms(data.Root.Context)
	for i := range data.Types {
		data.Types[i].Context = render.UniqueTerms(data.Types[i].Context)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "gotypes.go.tmpl", data); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to format generated code")
	}
	return out, nil
}

// constants turns constant symbols into distinct Go identifiers.
func constants(in []render.Constant) []render.Constant {
	out := make([]render.Constant, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		base := identifier(c.Symbol)
		if r := []rune(base); !unicode.IsUpper(r[0]) {
			base = "F_" + base
		}
		sym := base
		for i := 2; seen[sym]; i++ {
			sym = base + strconv.Itoa(i)
		}
		seen[sym] = true
		out = append(out, render.Constant{Symbol: sym, Label: c.Label})
	}
	return out
}

// attributesField returns the name of the attribute map of td.
func attributesField(td render.TypeDef) string {
	for _, f := range td.Fields {
		if f.Role == "attributes" {
			return f.Name
		}
	}
	return ""
}

// packageName derives a valid package name from name.
func packageName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(filepath.Base(name)) {
		if unicode.IsLetter(r) || (sb.Len() > 0 && unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 || name == "" {
		return render.DefaultPackage
	}
	return sb.String()
}

// comment formats text as a Go line comment, prefixed with name when set.
func comment(name, text string) string {
	text = strings.TrimSpace(text)
	if name != "" {
		text = name + ": " + text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}

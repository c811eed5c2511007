// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package scala

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/render"
)

//go:embed scala.scala.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"last": func(i int, fields []render.Field) bool {
		return i == len(fields)-1
	},
	"quote":     quote,
	"ident":     ident,
	"comment":   comment,
	"isEmpty":   isEmpty,
	"emptyArgs": emptyArgs,
	"context":   contextMap,
	"keys":      keys,
}).ParseFS(tmplFS, "scala.scala.tmpl"))

// Renderer renders forests to Scala source files.
type Renderer struct{}

// Name returns the format identifier.
func (r *Renderer) Name() string {
	return "scala"
}

// FileExtension returns the file extension for Scala files.
func (r *Renderer) FileExtension() string {
	return ".scala"
}

// Render converts a forest to Scala 3 case class definitions.
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

	// Sort fields so required fields come before optional fields.
	sortFields := func(fields []render.Field) {
		sort.SliceStable(fields, func(i, j int) bool {
			if fields[i].Nullable != fields[j].Nullable {
				return !fields[i].Nullable
			}
			return false
		})
	}

	sortFields(data.Root.Fields)
	data.Root.Context = render.UniqueTerms(data.Root.Context)
	for i := range data.Types {
		sortFields(data.Types[i].Fields)
		data.Types[i].Context = render.UniqueTerms(data.Types[i].Context)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "scala.scala.tmpl", data); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// constants deduplicates constant symbols.
func constants(in []render.Constant) []render.Constant {
	out := make([]render.Constant, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		base := c.Symbol
		if base == "" {
			base = "field"
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

// isEmpty returns the body of the isEmpty method of td.
func isEmpty(td render.TypeDef) string {
	var conds []string
	for _, f := range td.Fields {
		name := ident(f.Name)
		switch {
		case f.Role == "identifier" || f.Role == "provenance":
		case f.Role == "attributes":
			conds = append(conds, name+".isEmpty")
		case f.Nullable || f.Container:
			conds = append(conds, name+".forall(_.isEmpty)")
		default:
			conds = append(conds, name+".isEmpty")
		}
	}
	if len(conds) == 0 {
		return "true"
	}
	return strings.Join(conds, " && ")
}

// emptyArgs returns the named arguments that build an empty td.
func emptyArgs(td render.TypeDef) string {
	var args []string
	for _, f := range td.Fields {
		if f.Nullable || f.Role == "attributes" {
			continue
		}
		switch f.Role {
		case "identifier":
			args = append(args, ident(f.Name)+" = newIdentifier()")
		case "child":
			args = append(args, ident(f.Name)+" = "+f.Ref+".empty")
		}
	}
	return strings.Join(args, ", ")
}

// contextMap returns the JSON-LD context of td as a Scala Map expression.
func contextMap(td render.TypeDef) string {
	entries := make([]string, 0, len(td.Context))
	for _, e := range td.Context {
		value := quote(e.IRI)
		if e.Type != "" {
			value = `Map("@type" -> ` + quote(e.Type) + `)`
		}
		entries = append(entries, "\n    "+quote(e.Term)+" -> "+value)
	}
	if len(entries) == 0 {
		return "Map.empty"
	}
	return "Map(" + strings.Join(entries, ",") + "\n  )"
}

// keys returns the serialization key of every member of td as a Scala Map
// expression.
func keys(td render.TypeDef) string {
	entries := make([]string, 0, len(td.Fields))
	for _, f := range td.Fields {
		if f.Key == "" {
			continue
		}
		entries = append(entries, quote(f.Name)+" -> "+quote(f.Key))
	}
	if len(entries) == 0 {
		return "Map.empty"
	}
	return "Map(" + strings.Join(entries, ", ") + ")"
}

// quote returns s as a Scala string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// packageName derives a valid package name from name.
func packageName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(filepath.Base(name)) {
		if unicode.IsLetter(r) || (sb.Len() > 0 && unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 || name == "" || keywords[sb.String()] {
		return render.DefaultPackage
	}
	return sb.String()
}

// comment formats text as Scala line comments.
func comment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}

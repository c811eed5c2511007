// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pydantic

import (
	"bytes"
	"embed"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/render"
)

//go:embed pydantic.py.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"quote":     strconv.Quote,
	"comment":   comment,
	"isEmpty":   isEmpty,
	"context":   contextDict,
	"emptyArgs": func(render.TypeDef) string { return "" },
}).ParseFS(tmplFS, "pydantic.py.tmpl"))

// Renderer renders forests to Python modules of Pydantic models.
type Renderer struct{}

// Name returns the format identifier.
func (r *Renderer) Name() string {
	return "pydantic"
}

// FileExtension returns the file extension for Python files.
func (r *Renderer) FileExtension() string {
	return ".py"
}

// Render converts a forest to Pydantic BaseModel definitions.
func (r *Renderer) Render(f *compile.Forest, opts render.Options) ([]byte, error) {
	data, err := render.Prepare(f, &resolver{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare forest")
	}

	if opts.Source != "" {
		data.Extra["Source"] = filepath.Base(opts.Source)
	}
	data.Extra["IRIPrefix"] = compile.IRIPrefix
	data.Extra["Constants"] = constants(data.Constants)

	// sorts fields so required fields come before optional fields.
	sortFields := func(fields []render.Field) {
		sort.SliceStable(fields, func(i, j int) bool {
			if fields[i].Nullable != fields[j].Nullable {
				return !fields[i].Nullable
			}
			return false
		})
	}

	all := append([]*render.TypeDef{&data.Root}, typeDefs(data.Types)...)
	containers := make(map[string]render.TypeDef)
	var lists []render.TypeDef
	data.Extra["NeedsDatetimeImport"] = false
	for _, td := range all {
		uniqueAttributes(td.Fields)
		sortFields(td.Fields)
		td.Context = render.UniqueTerms(td.Context)
		for _, f := range td.Fields {
			// checks if any field type contains datetime.
			if strings.Contains(f.Type, "datetime.") {
				data.Extra["NeedsDatetimeImport"] = true
			}
		}
		if td.IsContainer() {
			containers[td.Name] = *td
			lists = append(lists, *td)
		}
	}
	data.Extra["Containers"] = lists

	t, err := tmpl.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "failed to clone template")
	}
	t.Funcs(template.FuncMap{
		"emptyArgs": func(td render.TypeDef) string { return emptyArgs(td, containers) },
	})

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "pydantic.py.tmpl", data); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func typeDefs(in []render.TypeDef) []*render.TypeDef {
	out := make([]*render.TypeDef, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// uniqueAttributes suffixes attribute names that collide after snake-casing.
func uniqueAttributes(fields []render.Field) {
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		base := fields[i].Name
		name := base
		for n := 2; seen[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[name] = true
		fields[i].Name = name
	}
}

// constants turns constant symbols into distinct Python identifiers.
func constants(in []render.Constant) []render.Constant {
	out := make([]render.Constant, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		base := identifier(c.Symbol, "_")
		if keywords[base] {
			base += "_"
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

// isEmpty returns the expression of the is_empty method of td.
func isEmpty(td render.TypeDef) string {
	var conds []string
	for _, f := range td.Fields {
		self := "self." + f.Name
		switch {
		case f.Role == "identifier" || f.Role == "provenance":
		case f.Role == "attributes":
			conds = append(conds, "not self.model_extra")
		case f.Container:
			conds = append(conds, "all(item.is_empty() for item in "+self+")")
		case f.Role == "child" && f.Nullable:
			conds = append(conds, "("+self+" is None or "+self+".is_empty())")
		case f.Role == "child":
			conds = append(conds, self+".is_empty()")
		default:
			conds = append(conds, "not "+self)
		}
	}
	if len(conds) == 0 {
		return "True"
	}
	return strings.Join(conds, " and ")
}

// emptyArgs returns the keyword arguments that build an empty td.
func emptyArgs(td render.TypeDef, containers map[string]render.TypeDef) string {
	var args []string
	for _, f := range td.Fields {
		if f.Nullable || f.Role == "attributes" {
			continue
		}
		switch {
		case f.Role == "identifier":
			args = append(args, f.Name+"=new_identifier()")
		case f.Container:
			list := "[]"
			if c, ok := containers[f.Ref]; ok && c.Seeded {
				list = "[" + c.Item + ".empty()]"
			}
			args = append(args, f.Name+"="+list)
		case f.Role == "child":
			args = append(args, f.Name+"="+f.Ref+".empty()")
		}
	}
	return strings.Join(args, ", ")
}

// contextDict returns the JSON-LD context of td as a Python dict literal.
func contextDict(td render.TypeDef) string {
	if len(td.Context) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, e := range td.Context {
		value := strconv.Quote(e.IRI)
		if e.Type != "" {
			value = `{"@type": ` + strconv.Quote(e.Type) + `}`
		}
		sb.WriteString("        " + strconv.Quote(e.Term) + ": " + value + ",\n")
	}
	sb.WriteString("    }")
	return sb.String()
}

// comment formats text as Python comments indented by indent.
func comment(indent, text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(indent+"# "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}

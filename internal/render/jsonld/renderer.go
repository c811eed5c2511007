// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonld renders the canonical empty instance of a forest's root as
// a JSON-LD document.
package jsonld

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/dacolabs/cedargen/internal/compile"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/render"
)

// Renderer renders forests to JSON-LD instances.
type Renderer struct{}

// Name returns the format identifier.
func (r *Renderer) Name() string {
	return "jsonld"
}

// FileExtension returns the file extension for JSON-LD documents.
func (r *Renderer) FileExtension() string {
	return ".jsonld"
}

// Render builds the canonical empty root instance and encodes it with every
// structural value carrying its own @context.
func (r *Renderer) Render(f *compile.Forest, _ render.Options) ([]byte, error) {
	if f == nil || f.Len() == 0 {
		return nil, errors.New("empty forest")
	}
	root := f.Root()
	inst, err := f.Empty(root.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build empty instance")
	}

	doc, err := structural(f, root, inst)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode instance")
	}
	return append(out, '\n'), nil
}

func structural(f *compile.Forest, d compile.Declaration, inst compile.Instance) (object, error) {
	var obj object
	if ctx, ok := f.Context(d.ID); ok && ctx.Len() > 0 {
		obj = append(obj, member{"@context", ctx})
	}
	for _, m := range d.Members {
		v, present := inst[m.Name]
		switch m.Role {
		case compile.RoleIdentifier:
			obj = append(obj, member{m.Key, v})
		case compile.RoleProvenance:
			if present {
				obj = append(obj, member{m.Key, v})
			}
		case compile.RoleAttributeValues:
			attrs, _ := v.(map[string]string)
			keys := make([]string, 0, len(attrs))
			for k := range attrs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				obj = append(obj, member{k, object{{"@value", attrs[k]}}})
			}
		case compile.RoleChild:
			if !present {
				continue
			}
			enc, err := value(f, m.Type.Decl, v)
			if err != nil {
				return nil, errors.Wrapf(err, "member %s", m.Name)
			}
			obj = append(obj, member{m.Key, enc})
		}
	}
	return obj, nil
}

func value(f *compile.Forest, id compile.DeclID, v any) (any, error) {
	d, ok := f.Decl(id)
	if !ok {
		return nil, errors.AssertionFailedf("no declaration #%d", id)
	}
	switch d.Kind {
	case compile.Structural:
		inst, _ := v.(compile.Instance)
		return structural(f, d, inst)
	case compile.Container:
		items, _ := v.([]any)
		out := make([]any, 0, len(items))
		for _, item := range items {
			enc, err := value(f, d.Item.Decl, item)
			if err != nil {
				return nil, err
			}
			out = append(out, enc)
		}
		return out, nil
	default:
		inst, _ := v.(compile.Instance)
		var obj object
		for _, m := range d.Members {
			obj = append(obj, member{m.Key, inst[m.Name]})
		}
		if d.Datatype != "" {
			obj = append(obj, member{"@type", d.Datatype})
		}
		return obj, nil
	}
}

type member struct {
	key   string
	value any
}

// object is a JSON object that keeps its member order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.value)
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

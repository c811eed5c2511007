// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compile

import (
	"github.com/dacolabs/cedargen/internal/errors"
)

// Instance is a target-neutral value of a declaration, keyed by member name.
type Instance map[string]any

// Empty returns the canonical empty instance of the structural declaration
// id. Optional members are absent, required members hold their own
// canonical empty value, containers are empty unless seeded, the attribute
// map is empty and the identifier is freshly minted.
func (f *Forest) Empty(id DeclID) (Instance, error) {
	d, ok := f.Decl(id)
	if !ok {
		return nil, errors.Newf("no declaration #%d", id)
	}
	if d.Kind != Structural {
		return nil, errors.Wrapf(ErrNotStructural, "%s is %s", d.Name, d.Kind)
	}
	return f.emptyStructural(d), nil
}

func (f *Forest) emptyStructural(d Declaration) Instance {
	inst := make(Instance, len(d.Members))
	for _, m := range d.Members {
		switch m.Role {
		case RoleIdentifier:
			inst[m.Name] = f.newID()
		case RoleAttributeValues:
			inst[m.Name] = map[string]string{}
		case RoleChild:
			if !m.Nullable {
				inst[m.Name] = f.emptyOf(m.Type.Decl)
			}
		}
	}
	return inst
}

func (f *Forest) emptyOf(id DeclID) any {
	d := f.decls[id]
	switch d.Kind {
	case Structural:
		return f.emptyStructural(d)
	case Container:
		items := []any{}
		if d.Seeded {
			items = append(items, f.emptyOf(d.Item.Decl))
		}
		return items
	default:
		inst := make(Instance, len(d.Members))
		for _, m := range d.Members {
			inst[m.Name] = nil
		}
		return inst
	}
}

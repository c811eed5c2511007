// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package compile turns a schema tree into a forest of named, typed
// declarations ready to be rendered.
package compile

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dacolabs/cedargen/internal/casing"
	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/ldcontext"
	"github.com/dacolabs/cedargen/internal/naming"
	"github.com/dacolabs/cedargen/internal/tree"
)

// IRIPrefix prefixes the identifiers minted for canonical empty instances.
const IRIPrefix = "https://repo.metadatacenter.org/template-element-instances/"

var (
	// ErrUnknownKind is returned for a node whose kind the compiler does not know.
	ErrUnknownKind = errors.New("unknown node kind")
	// ErrNotStructural is returned when a structural declaration was expected.
	ErrNotStructural = errors.New("declaration is not structural")
)

// Well-known member names.
const (
	IdentifierMember      = "id"
	AttributeValuesMember = "attributeValues"
	ValueMember           = "value"
	LabelMember           = "label"
	ItemsMember           = "items"
)

// provenance lists the root-only members in emission order.
var provenance = []struct {
	name string
	key  string
	kind TypeKind
}{
	{"schemaName", "schema:name", TypeString},
	{"schemaDescription", "schema:description", TypeString},
	{"isBasedOn", "schema:isBasedOn", TypeIdentifier},
	{"pavCreatedOn", "pav:createdOn", TypeTimestamp},
	{"pavCreatedBy", "pav:createdBy", TypeIdentifier},
	{"pavLastUpdatedOn", "pav:lastUpdatedOn", TypeTimestamp},
	{"oslcModifiedBy", "oslc:modifiedBy", TypeIdentifier},
	{"pavDerivedFrom", "pav:derivedFrom", TypeIdentifier},
}

type config struct {
	format      naming.Format
	defaultName string
	newID       func() string
	log         *zap.Logger
}

// Option configures a compiler run.
type Option func(*config)

// WithNameFormat selects the type name format.
func WithNameFormat(f naming.Format) Option {
	return func(c *config) { c.format = f }
}

// WithDefaultName sets the type name given to a template root.
func WithDefaultName(name string) Option {
	return func(c *config) { c.defaultName = name }
}

// WithIDGenerator replaces the identifier generator used by canonical empty
// instances.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger that receives one debug entry per declaration.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func newIdentifier() string {
	return IRIPrefix + uuid.NewString()
}

type compiler struct {
	tree   *tree.Tree
	oracle *naming.Oracle
	forest *Forest
	log    *zap.Logger
	// required memoizes effective requiredness per node.
	required map[tree.NodeID]bool
}

// Compile builds the declaration forest of t. It fails without a partial
// result when any node has an unknown kind.
func Compile(t *tree.Tree, opts ...Option) (*Forest, error) {
	cfg := config{
		format:      naming.SuffixWithKind,
		defaultName: naming.DefaultTemplateName,
		newID:       newIdentifier,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for n := range t.All() {
		if !n.Kind.IsStructural() && !n.Kind.IsField() {
			return nil, errors.Wrapf(ErrUnknownKind, "node #%d %q has kind %s", n.ID, n.Label, n.Kind)
		}
	}

	c := &compiler{
		tree:   t,
		oracle: naming.New(naming.WithFormat(cfg.format), naming.WithDefaultName(cfg.defaultName)),
		forest: &Forest{
			tree:     t,
			contexts: make(map[DeclID]ldcontext.Map),
			byNode:   make(map[tree.NodeID]DeclID),
			listNode: make(map[tree.NodeID]DeclID),
			newID:    cfg.newID,
		},
		log:      cfg.log,
		required: make(map[tree.NodeID]bool),
	}

	// Constants are numbered in pre-order, independent of emission order.
	for n := range t.All() {
		if !n.Root {
			c.oracle.ConstantName(n)
		}
	}

	item, list, err := c.visit(t.Root(), nil, NoDecl)
	if err != nil {
		return nil, err
	}
	c.forest.roots = append(c.forest.roots, item)
	if list != NoDecl {
		c.forest.roots = append(c.forest.roots, list)
	}
	c.forest.constants = c.oracle.Constants()
	return c.forest, nil
}

// visit declares n, named within scope, under parent. It returns the item
// declaration and, for multi-valued nodes, the container declaration.
func (c *compiler) visit(n tree.Node, scope *naming.Scope, parent DeclID) (DeclID, DeclID, error) {
	name := c.oracle.TypeName(n, scope)
	if n.IsAttributeValue() && !n.Root {
		c.log.Debug("attribute-value node opens its parent", zap.Int("node", int(n.ID)), zap.String("label", n.Label))
		return NoDecl, NoDecl, nil
	}

	var item DeclID
	switch n.Kind {
	case tree.KindTemplate, tree.KindElement:
		item = c.declare(Declaration{Kind: Structural, Name: name}, n, parent)
	case tree.KindLiteralField:
		item = c.declare(Declaration{
			Kind:     Literal,
			Name:     name,
			Datatype: n.Datatype,
			Members: []Member{
				{Name: ValueMember, Key: "@value", Type: builtin(TypeString), Nullable: true, Role: RoleValue, Node: -1},
			},
		}, n, parent)
	case tree.KindReferenceField:
		members := []Member{
			{Name: IdentifierMember, Key: "@id", Type: builtin(TypeIdentifier), Nullable: true, Role: RoleValue, Node: -1},
		}
		if !n.IsLinkOnly() {
			members = append(members, Member{Name: LabelMember, Key: "rdfs:label", Type: builtin(TypeString), Nullable: true, Role: RoleValue, Node: -1})
		}
		item = c.declare(Declaration{Kind: Reference, Name: name, LinkOnly: n.IsLinkOnly(), Members: members}, n, parent)
	default:
		return NoDecl, NoDecl, errors.Wrapf(ErrUnknownKind, "node #%d %q has kind %s", n.ID, n.Label, n.Kind)
	}
	c.forest.byNode[n.ID] = item

	list := NoDecl
	if n.IsMultiple() {
		list = c.declareContainer(n, item, parent)
	}

	if n.Kind.IsStructural() {
		if err := c.fill(n, item, scope.With(n)); err != nil {
			return NoDecl, NoDecl, err
		}
	}
	return item, list, nil
}

// fill declares the children of the structural node n and sets the members
// of its declaration id.
func (c *compiler) fill(n tree.Node, id DeclID, scope *naming.Scope) error {
	members := []Member{
		{Name: IdentifierMember, Key: "@id", Type: builtin(TypeIdentifier), Role: RoleIdentifier, Node: -1},
	}
	if n.Root {
		for _, p := range provenance {
			members = append(members, Member{Name: p.name, Key: p.key, Type: builtin(p.kind), Nullable: true, Role: RoleProvenance, Node: -1})
		}
	}

	used := make(map[string]bool, len(members))
	for _, m := range members {
		used[strings.ToLower(m.Name)] = true
	}

	open := false
	sib := scope
	for _, child := range c.tree.Children(n.ID) {
		item, list, err := c.visit(child, sib, id)
		if err != nil {
			return err
		}
		sib = sib.With(child)

		if item == NoDecl {
			open = true
			continue
		}
		ref := declRef(c.forest.decls[item])
		if list != NoDecl {
			ref = declRef(c.forest.decls[list])
		}
		members = append(members, Member{
			Name:     memberName(child.Label, used),
			Key:      casing.StripMarker(child.Label),
			Type:     ref,
			Nullable: !c.isRequired(child),
			Role:     RoleChild,
			Node:     child.ID,
			Constant: c.oracle.ConstantName(child),
		})
	}
	if open {
		members = append(members, Member{
			Name: memberName(AttributeValuesMember, used),
			Type: builtin(TypeAttributeMap),
			Role: RoleAttributeValues,
			Node: -1,
		})
	}

	d := &c.forest.decls[id]
	d.Members = members
	d.Open = open
	c.forest.contexts[id] = ldcontext.Assemble(c.tree, n.ID, c.oracle.ConstantName)
	return nil
}

func (c *compiler) declareContainer(n tree.Node, item DeclID, parent DeclID) DeclID {
	it := c.forest.decls[item]
	id := c.declare(Declaration{
		Kind:   Container,
		Name:   it.Name + "List",
		Item:   declRef(it),
		Bounds: n.Cardinality,
		Seeded: c.isRequired(n),
		Members: []Member{
			{Name: ItemsMember, Type: TypeRef{Kind: TypeSequence, Decl: it.ID, Name: it.Name}, Role: RoleValue, Node: -1},
		},
	}, n, parent)
	c.forest.listNode[n.ID] = id
	return id
}

// declare appends d to the forest as a nested declaration of parent.
func (c *compiler) declare(d Declaration, n tree.Node, parent DeclID) DeclID {
	d.ID = DeclID(len(c.forest.decls))
	d.Parent = parent
	d.Node = n.ID
	d.Description = n.Description
	c.forest.decls = append(c.forest.decls, d)
	if parent != NoDecl {
		p := &c.forest.decls[parent]
		p.Nested = append(p.Nested, d.ID)
	}
	c.log.Debug("declared",
		zap.String("name", d.Name),
		zap.Stringer("kind", d.Kind),
		zap.Int("node", int(n.ID)),
	)
	return d.ID
}

// isRequired reports whether n is required or has a required descendant.
func (c *compiler) isRequired(n tree.Node) bool {
	if r, ok := c.required[n.ID]; ok {
		return r
	}
	r := n.Required
	if !r {
		for _, child := range c.tree.Children(n.ID) {
			if c.isRequired(child) {
				r = true
				break
			}
		}
	}
	c.required[n.ID] = r
	return r
}

// memberName returns the lower-camel member name of label, suffixed with a
// counter when the declaration already has a member of that name ignoring
// case.
func memberName(label string, used map[string]bool) string {
	base := casing.Normalize(label, casing.StartWithLowercase)
	if base == "" {
		base = "field"
	}
	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		name = base + strconv.Itoa(i)
	}
	used[strings.ToLower(name)] = true
	return name
}

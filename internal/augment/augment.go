package augment

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/ir"
)

// Augment derives the complete generated schema of model.
//
// The model must come from compiler.Build; Augment does not re-validate
// it. The returned document contains definitions only, ready for Print.
func Augment(model *ir.Model, cfg config.Config) *ast.SchemaDocument {
	a := &augmenter{
		model:      model,
		cfg:        cfg,
		scalars:    make(map[string]bool),
		aggregates: make(map[string]bool),
		emitted:    make(map[*ir.Relationship]bool),
	}
	return a.run()
}

type augmenter struct {
	model *ir.Model
	cfg   config.Config

	user  []*ast.Definition // Passed-through enums and interfaces
	types []*ast.Definition // Node and relationship derived types

	query    ast.FieldList
	mutation ast.FieldList

	scalars    map[string]bool           // Extended scalars referenced
	aggregates map[string]bool           // Scalars with an aggregate selection in use
	emitted    map[*ir.Relationship]bool // Properties types already generated
}

func (a *augmenter) run() *ast.SchemaDocument {
	for _, e := range a.model.Enums {
		a.user = append(a.user, enum(e.Name, e.Values...))
	}
	for _, i := range a.model.Interfaces {
		def := &ast.Definition{Kind: ast.Interface, Name: i.Name}
		for _, f := range i.Fields {
			def.Fields = append(def.Fields, a.plainField(f))
		}
		a.user = append(a.user, def)
	}
	for _, n := range a.model.Nodes {
		a.node(n)
	}
	query := a.mergeRoot(a.query, a.model.QueryFields)
	mutation := a.mergeRoot(a.mutation, a.model.MutationFields)

	doc := &ast.SchemaDocument{}
	add := func(defs ...*ast.Definition) {
		doc.Definitions = append(doc.Definitions, defs...)
	}
	for _, s := range ir.ExtendedScalars {
		if a.scalars[s] {
			add(scalar(s))
		}
	}
	for _, s := range a.model.Scalars {
		add(scalar(s))
	}
	add(sortDirection())
	add(a.user...)
	if len(a.model.Nodes) > 0 {
		add(pageInfo(), createInfo(), updateInfo(), deleteInfo())
	}
	add(a.aggregateSelections()...)
	add(a.types...)
	if len(query) > 0 {
		add(object("Query", query))
	}
	if len(mutation) > 0 {
		add(object("Mutation", mutation))
	}
	return doc
}

// typeOf converts a model type reference, recording extended scalars
// that must be declared.
func (a *augmenter) typeOf(ref ir.TypeRef) *ast.Type {
	a.use(ref.Name)
	if ref.List {
		elem := &ast.Type{NamedType: ref.Name, NonNull: ref.ElemNonNull}
		return &ast.Type{Elem: elem, NonNull: ref.NonNull}
	}
	return &ast.Type{NamedType: ref.Name, NonNull: ref.NonNull}
}

func (a *augmenter) named(name string) *ast.Type {
	a.use(name)
	return named(name)
}

func (a *augmenter) use(name string) {
	if ir.IsExtendedScalar(name) {
		a.scalars[name] = true
	}
}

// plainField is a field as declared, without directives or arguments.
func (a *augmenter) plainField(f *ir.Field) *ast.FieldDefinition {
	return &ast.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        a.typeOf(f.Type),
	}
}

func (a *augmenter) node(n *ir.Node) {
	names := ir.NamesFor(n)

	obj := &ast.Definition{
		Kind:        ast.Object,
		Name:        n.Name,
		Description: n.Description,
		Interfaces:  n.Interfaces,
	}
	for _, f := range n.Fields {
		fd := a.plainField(f)
		obj.Fields = append(obj.Fields, fd)
		if f.Kind != ir.KindRelationship {
			continue
		}
		rf := n.RelationField(f.Name)
		target := ir.NamesFor(rf.Target)
		fd.Arguments = ast.ArgumentDefinitionList{
			arg("where", named(target.Where)),
			arg("options", named(target.Options)),
		}
		obj.Fields = append(obj.Fields, field(rf.Name+"Connection",
			nonNull(ir.ConnectionName(n, rf)),
			arg("where", named(ir.ConnectionWhereName(n, rf))),
			arg("first", named(ir.ScalarInt)),
			arg("after", named(ir.ScalarString)),
		))
	}
	a.types = append(a.types, obj)

	for _, rf := range n.RelationFields {
		a.relationField(n, rf)
	}

	a.types = append(a.types, input(names.Where, a.whereFields(n, names.Where)))

	sort := a.sortFields(n.Fields)
	options := ast.FieldList{}
	if len(sort) > 0 {
		options = append(options, field("sort", listOf(nonNull(names.Sort))))
	}
	options = append(options,
		field("limit", named(ir.ScalarInt)),
		field("offset", named(ir.ScalarInt)),
	)
	a.types = append(a.types, input(names.Options, options))
	if len(sort) > 0 {
		a.types = append(a.types, input(names.Sort, sort))
	}

	a.types = append(a.types,
		input(names.CreateInput, a.inputFields(n.Fields, true)),
		input(names.UpdateInput, a.inputFields(n.Fields, false)),
		object(names.CreateResponse, ast.FieldList{
			field("info", nonNull("CreateInfo")),
			field(names.Plural, nonNullList(nonNull(n.Name))),
		}),
		object(names.UpdateResponse, ast.FieldList{
			field("info", nonNull("UpdateInfo")),
			field(names.Plural, nonNullList(nonNull(n.Name))),
		}),
	)

	a.query = append(a.query, field(names.Plural,
		nonNullList(nonNull(n.Name)),
		arg("where", named(names.Where)),
		arg("options", named(names.Options)),
	))
	if a.cfg.Aggregate {
		a.types = append(a.types, object(names.AggregateSelection, a.aggregateFields(n.Fields)))
		a.query = append(a.query, field(names.Aggregate,
			nonNull(names.AggregateSelection),
			arg("where", named(names.Where)),
		))
	}

	a.mutation = append(a.mutation,
		field(names.Create, nonNull(names.CreateResponse),
			arg("input", nonNullList(nonNull(names.CreateInput))),
		),
		field(names.Update, nonNull(names.UpdateResponse),
			arg("where", named(names.Where)),
			arg("update", named(names.UpdateInput)),
		),
		field(names.Delete, nonNull("DeleteInfo"),
			arg("where", named(names.Where)),
		),
	)
}

// relationField emits the connection, edge and connection filter types of
// one relationship field, and the properties types on first reference.
func (a *augmenter) relationField(n *ir.Node, rf *ir.RelationField) {
	if rf.Properties != nil {
		a.relationship(rf.Properties)
	}

	a.types = append(a.types, object(ir.ConnectionName(n, rf), ast.FieldList{
		field("edges", nonNullList(nonNull(ir.RelationshipName(n, rf)))),
		field("totalCount", nonNull(ir.ScalarInt)),
		field("pageInfo", nonNull("PageInfo")),
	}))

	edge := object(ir.RelationshipName(n, rf), ast.FieldList{
		field("cursor", nonNull(ir.ScalarString)),
		field("node", nonNull(rf.Target.Name)),
	})
	if rf.Properties != nil {
		edge.Interfaces = []string{rf.Properties.Name}
		for _, f := range rf.Properties.Fields {
			edge.Fields = append(edge.Fields, a.plainField(f))
		}
	}
	a.types = append(a.types, edge)

	whereName := ir.ConnectionWhereName(n, rf)
	targetWhere := ir.NamesFor(rf.Target).Where
	fields := ast.FieldList{
		field("AND", listOf(nonNull(whereName))),
		field("OR", listOf(nonNull(whereName))),
		field("node", named(targetWhere)),
		field("node_NOT", named(targetWhere)),
	}
	if rf.Properties != nil {
		propsWhere := rf.Properties.Name + "Where"
		fields = append(fields,
			field("edge", named(propsWhere)),
			field("edge_NOT", named(propsWhere)),
		)
	}
	a.types = append(a.types, input(whereName, fields))
}

// relationship emits the properties interface, Where and Sort types of r
// once, however many relationship fields share it.
func (a *augmenter) relationship(r *ir.Relationship) {
	if a.emitted[r] {
		return
	}
	a.emitted[r] = true

	iface := &ast.Definition{Kind: ast.Interface, Name: r.Name, Description: r.Description}
	for _, f := range r.Fields {
		iface.Fields = append(iface.Fields, a.plainField(f))
	}
	a.types = append(a.types, iface, input(r.Name+"Where", a.whereFields(r, r.Name+"Where")))
	if sort := a.sortFields(r.Fields); len(sort) > 0 {
		a.types = append(a.types, input(r.Name+"Sort", sort))
	}
}

// mergeRoot overlays user-declared root fields on the generated ones.
func (a *augmenter) mergeRoot(generated ast.FieldList, user []*ir.UserField) ast.FieldList {
	for _, uf := range user {
		fd := a.plainField(&uf.Field)
		for _, in := range uf.Arguments {
			ad := arg(in.Name, a.typeOf(in.Type))
			if in.Default != "" {
				ad.DefaultValue = literal(in.Default)
			}
			fd.Arguments = append(fd.Arguments, ad)
		}
		replaced := false
		for i, g := range generated {
			if g.Name == fd.Name {
				generated[i] = fd
				replaced = true
				break
			}
		}
		if !replaced {
			generated = append(generated, fd)
		}
	}
	return generated
}

// sortFields lists the single-valued scalar and enum fields.
func (a *augmenter) sortFields(fields []*ir.Field) ast.FieldList {
	var out ast.FieldList
	for _, f := range fields {
		if f.Kind == ir.KindPrimitive {
			out = append(out, field(f.Name, named("SortDirection")))
		}
	}
	return out
}

// inputFields lists the client-supplied fields of a create or update
// input. Update inputs make every field optional.
func (a *augmenter) inputFields(fields []*ir.Field, create bool) ast.FieldList {
	var out ast.FieldList
	for _, f := range fields {
		if f.Kind != ir.KindPrimitive && f.Kind != ir.KindList {
			continue
		}
		if f.Generated() {
			continue
		}
		t := a.typeOf(f.Type)
		if !create {
			t.NonNull = false
		}
		out = append(out, field(f.Name, t))
	}
	if len(out) == 0 {
		// GraphQL input objects need at least one field.
		out = append(out, field("_emptyInput", named(ir.ScalarBoolean)))
	}
	return out
}

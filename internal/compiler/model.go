package compiler

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/ir"
)

// Build validates a parsed document and resolves it into an entity model.
//
// Validation is fail-fast: the first violation in declaration order is
// returned as a *SchemaError and no model is produced.
func Build(doc *ast.SchemaDocument) (*ir.Model, error) {
	defs, err := collect(doc)
	if err != nil {
		return nil, err
	}
	if err := defs.validate(); err != nil {
		return nil, err
	}
	m := defs.model()
	if err := defs.checkGenerated(m); err != nil {
		return nil, err
	}
	return m, nil
}

// checkGenerated rejects declared types whose name the augmented schema
// derives for some entity or shares across all of them.
func (defs *definitions) checkGenerated(m *ir.Model) error {
	generated := ir.GeneratedTypes(m)
	for _, def := range defs.order {
		if isRootType(def.Name) {
			continue
		}
		owner, ok := generated[def.Name]
		if !ok {
			continue
		}
		if owner == "" {
			return typeError(ErrGeneratedTypeName, def,
				fmt.Sprintf("Type name %q is reserved for a generated type.", def.Name))
		}
		return typeError(ErrGeneratedTypeName, def,
			fmt.Sprintf("Type name %q collides with a type generated for %q.", def.Name, owner))
	}
	return nil
}

// model resolves validated definitions. Shells are created first so that
// relationship targets and properties can be linked regardless of order.
func (defs *definitions) model() *ir.Model {
	m := &ir.Model{}
	nodes := make(map[string]*ir.Node)
	rels := make(map[string]*ir.Relationship)

	for _, def := range defs.order {
		switch {
		case def.Kind == ast.Object && !isRootType(def.Name):
			n := &ir.Node{
				Name:        def.Name,
				Description: def.Description,
				Interfaces:  def.Interfaces,
			}
			nodes[n.Name] = n
			m.Nodes = append(m.Nodes, n)
		case def.Kind == ast.Interface && defs.properties[def.Name]:
			r := &ir.Relationship{Name: def.Name, Description: def.Description}
			rels[r.Name] = r
			m.Relationships = append(m.Relationships, r)
		}
	}

	for _, def := range defs.order {
		switch def.Kind {
		case ast.Object:
			switch def.Name {
			case "Query":
				m.QueryFields = defs.userFields(def)
			case "Mutation":
				m.MutationFields = defs.userFields(def)
			case "Subscription":
				// event delivery is handled outside the schema
			default:
				defs.fillNode(nodes[def.Name], def, nodes, rels)
			}
		case ast.Interface:
			if r, ok := rels[def.Name]; ok {
				r.Fields = defs.fields(def.Fields)
				continue
			}
			m.Interfaces = append(m.Interfaces, &ir.Interface{
				Name:   def.Name,
				Fields: defs.fields(def.Fields),
			})
		case ast.Enum:
			e := ir.Enum{Name: def.Name}
			for _, v := range def.EnumValues {
				e.Values = append(e.Values, v.Name)
			}
			m.Enums = append(m.Enums, e)
		case ast.Scalar:
			m.Scalars = append(m.Scalars, def.Name)
		}
	}

	return m
}

func (defs *definitions) fillNode(n *ir.Node, def *ast.Definition, nodes map[string]*ir.Node, rels map[string]*ir.Relationship) {
	if d := def.Directives.ForName(ir.DirectiveAuth); d != nil {
		n.Auth = authDirective(d)
	}

	for _, fd := range def.Fields {
		f := defs.field(fd)
		n.Fields = append(n.Fields, f)
		if f.Kind != ir.KindRelationship {
			continue
		}
		rd, _ := relationshipDirective(fd.Directives.ForName(ir.DirectiveRelationship))
		n.RelationFields = append(n.RelationFields, &ir.RelationField{
			Field:      f,
			Type:       rd.Type,
			Direction:  rd.Direction,
			Target:     nodes[f.Type.Name],
			Properties: rels[rd.Properties],
		})
	}
}

func (defs *definitions) fields(list ast.FieldList) []*ir.Field {
	out := make([]*ir.Field, 0, len(list))
	for _, fd := range list {
		out = append(out, defs.field(fd))
	}
	return out
}

func (defs *definitions) field(fd *ast.FieldDefinition) *ir.Field {
	return &ir.Field{
		Name:        fd.Name,
		Description: fd.Description,
		Type:        typeRef(fd.Type),
		Kind:        defs.fieldKind(fd),
		Directives:  convertDirectives(fd.Directives),
	}
}

func (defs *definitions) fieldKind(fd *ast.FieldDefinition) ir.FieldKind {
	switch {
	case fd.Directives.ForName(ir.DirectiveRelationship) != nil:
		return ir.KindRelationship
	case fd.Directives.ForName(ir.DirectiveCypher) != nil:
		return ir.KindComputed
	}
	name := baseName(fd.Type)
	if ir.IsBuiltinScalar(name) || ir.IsExtendedScalar(name) || defs.isUserScalar(name) {
		if isList(fd.Type) {
			return ir.KindList
		}
		return ir.KindPrimitive
	}
	return ir.KindObject
}

func (defs *definitions) userFields(def *ast.Definition) []*ir.UserField {
	out := make([]*ir.UserField, 0, len(def.Fields))
	for _, fd := range def.Fields {
		uf := &ir.UserField{Field: *defs.field(fd)}
		for _, arg := range fd.Arguments {
			a := ir.Argument{Name: arg.Name, Type: typeRef(arg.Type)}
			if arg.DefaultValue != nil {
				a.Default = arg.DefaultValue.String()
			}
			uf.Arguments = append(uf.Arguments, a)
		}
		out = append(out, uf)
	}
	return out
}

// typeRef flattens an AST type. Nested lists collapse to one level.
func typeRef(t *ast.Type) ir.TypeRef {
	if t.Elem == nil {
		return ir.TypeRef{Name: t.NamedType, NonNull: t.NonNull}
	}
	return ir.TypeRef{
		Name:        baseName(t),
		NonNull:     t.NonNull,
		List:        true,
		ElemNonNull: t.Elem.NonNull,
	}
}

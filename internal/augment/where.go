package augment

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/filterir"
	"github.com/roach88/neoschema/internal/ir"
)

// whereFields lists the filter keys of an entity: the combinators, the
// comparison operators of every field and, for nodes, the relation and
// connection filters of each relationship field.
//
// Keys match what filterir.ParseWhere accepts.
func (a *augmenter) whereFields(entity ir.Entity, whereName string) ast.FieldList {
	fields := ast.FieldList{
		field("OR", listOf(nonNull(whereName))),
		field("AND", listOf(nonNull(whereName))),
	}
	node, _ := entity.(*ir.Node)
	for _, f := range entity.EntityFields() {
		if f.Kind == ir.KindRelationship && node != nil {
			rf := node.RelationField(f.Name)
			targetWhere := ir.NamesFor(rf.Target).Where
			connWhere := ir.ConnectionWhereName(node, rf)
			fields = append(fields,
				field(rf.Name, named(targetWhere)),
				field(rf.Name+"_NOT", named(targetWhere)),
				field(rf.Name+"Connection", named(connWhere)),
				field(rf.Name+"Connection_NOT", named(connWhere)),
			)
			continue
		}
		for _, op := range filterir.Operators(f, a.cfg.EnableRegex) {
			fields = append(fields, field(op.Key(f.Name), a.operatorType(f, op)))
		}
	}
	return fields
}

// operatorType is the input type of one comparison key. Membership
// operators take a list of the field type; list fields compare whole
// lists for equality and single elements for inclusion.
func (a *augmenter) operatorType(f *ir.Field, op filterir.Operator) *ast.Type {
	elem := f.Type.Name
	switch {
	case op.TakesList():
		return listOf(a.named(elem))
	case f.Kind == ir.KindList && (op == filterir.OpIncludes || op == filterir.OpNotIncludes):
		return a.named(elem)
	case f.Kind == ir.KindList:
		return listOf(a.named(elem))
	default:
		return a.named(elem)
	}
}

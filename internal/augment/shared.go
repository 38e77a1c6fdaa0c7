package augment

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/ir"
)

func aggregatable(scalar string) bool {
	for _, k := range ir.AggregateKinds {
		if k.Scalar == scalar {
			return true
		}
	}
	return false
}

// aggregateFields builds the body of a node's aggregate selection.
func (a *augmenter) aggregateFields(fields []*ir.Field) ast.FieldList {
	out := ast.FieldList{field("count", nonNull(ir.ScalarInt))}
	for _, f := range fields {
		if f.Kind != ir.KindPrimitive || !aggregatable(f.Type.Name) {
			continue
		}
		a.aggregates[f.Type.Name] = true
		out = append(out, field(f.Name, nonNull(ir.AggregateSelectionName(f.Type.Name))))
	}
	return out
}

// aggregateSelections emits the per-scalar selection types in use.
func (a *augmenter) aggregateSelections() []*ast.Definition {
	var defs []*ast.Definition
	for _, k := range ir.AggregateKinds {
		if !a.aggregates[k.Scalar] {
			continue
		}
		def := object(ir.AggregateSelectionName(k.Scalar), nil)
		for _, name := range k.Fields {
			typ := k.Scalar
			if name == "average" && k.Scalar == ir.ScalarInt {
				typ = ir.ScalarFloat
			}
			def.Fields = append(def.Fields, field(name, nonNull(typ)))
		}
		defs = append(defs, def)
	}
	return defs
}

func sortDirection() *ast.Definition {
	def := enum("SortDirection", "ASC", "DESC")
	def.EnumValues[0].Description = "Sort by field values in ascending order."
	def.EnumValues[1].Description = "Sort by field values in descending order."
	return def
}

func pageInfo() *ast.Definition {
	return object("PageInfo", ast.FieldList{
		field("hasNextPage", nonNull(ir.ScalarBoolean)),
		field("hasPreviousPage", nonNull(ir.ScalarBoolean)),
		field("startCursor", named(ir.ScalarString)),
		field("endCursor", named(ir.ScalarString)),
	})
}

func createInfo() *ast.Definition {
	return object("CreateInfo", ast.FieldList{
		field("bookmark", named(ir.ScalarString)),
		field("nodesCreated", nonNull(ir.ScalarInt)),
		field("relationshipsCreated", nonNull(ir.ScalarInt)),
	})
}

func updateInfo() *ast.Definition {
	return object("UpdateInfo", ast.FieldList{
		field("bookmark", named(ir.ScalarString)),
		field("nodesCreated", nonNull(ir.ScalarInt)),
		field("nodesDeleted", nonNull(ir.ScalarInt)),
		field("relationshipsCreated", nonNull(ir.ScalarInt)),
		field("relationshipsDeleted", nonNull(ir.ScalarInt)),
	})
}

func deleteInfo() *ast.Definition {
	return object("DeleteInfo", ast.FieldList{
		field("bookmark", named(ir.ScalarString)),
		field("nodesDeleted", nonNull(ir.ScalarInt)),
		field("relationshipsDeleted", nonNull(ir.ScalarInt)),
	})
}

package filterir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/neoschema/internal/ir"
)

func TestOperatorKey(t *testing.T) {
	assert.Equal(t, "title", OpEqual.Key("title"))
	assert.Equal(t, "title_NOT", OpNot.Key("title"))
	assert.Equal(t, "title_NOT_ENDS_WITH", OpNotEndsWith.Key("title"))
}

func TestOperatorFlags(t *testing.T) {
	assert.True(t, OpIn.TakesList())
	assert.True(t, OpNotIn.TakesList())
	assert.False(t, OpIncludes.TakesList())

	assert.True(t, OpNotIncludes.Negated())
	assert.True(t, OpNot.Negated())
	assert.False(t, OpMatches.Negated())
}

func TestOperatorsByCategory(t *testing.T) {
	field := func(name string, kind ir.FieldKind) *ir.Field {
		return &ir.Field{Name: "f", Type: ir.TypeRef{Name: name}, Kind: kind}
	}

	tests := []struct {
		name  string
		field *ir.Field
		regex bool
		want  []Operator
	}{
		{"string", field(ir.ScalarString, ir.KindPrimitive), false, stringOps},
		{"id", field(ir.ScalarID, ir.KindPrimitive), false, stringOps},
		{"int", field(ir.ScalarInt, ir.KindPrimitive), false, orderingOps},
		{"datetime", field(ir.ScalarDateTime, ir.KindPrimitive), false, orderingOps},
		{"boolean", field(ir.ScalarBoolean, ir.KindPrimitive), false, equalityOps},
		{"enum", field("Rating", ir.KindPrimitive), false, membershipOps},
		{"list", field(ir.ScalarString, ir.KindList), false, listOps},
		{"computed", field(ir.ScalarString, ir.KindComputed), false, nil},
		{"object", field("Studio", ir.KindObject), false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Operators(tt.field, tt.regex))
		})
	}
}

func TestOperatorsMatchesOnlyWithRegex(t *testing.T) {
	str := &ir.Field{Name: "title", Type: ir.TypeRef{Name: ir.ScalarString}, Kind: ir.KindPrimitive}
	num := &ir.Field{Name: "year", Type: ir.TypeRef{Name: ir.ScalarInt}, Kind: ir.KindPrimitive}

	assert.NotContains(t, Operators(str, false), OpMatches)
	assert.Contains(t, Operators(str, true), OpMatches)
	assert.NotContains(t, Operators(num, true), OpMatches)

	// Enabling regex must not mutate the shared catalog.
	assert.NotContains(t, stringOps, OpMatches)
}

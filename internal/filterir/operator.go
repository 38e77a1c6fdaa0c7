package filterir

import "github.com/roach88/neoschema/internal/ir"

// Operator is a comparison suffix of a Where input key.
// The zero value is plain equality.
type Operator string

const (
	OpEqual         Operator = ""
	OpNot           Operator = "NOT"
	OpIn            Operator = "IN"
	OpNotIn         Operator = "NOT_IN"
	OpLT            Operator = "LT"
	OpLTE           Operator = "LTE"
	OpGT            Operator = "GT"
	OpGTE           Operator = "GTE"
	OpContains      Operator = "CONTAINS"
	OpNotContains   Operator = "NOT_CONTAINS"
	OpStartsWith    Operator = "STARTS_WITH"
	OpNotStartsWith Operator = "NOT_STARTS_WITH"
	OpEndsWith      Operator = "ENDS_WITH"
	OpNotEndsWith   Operator = "NOT_ENDS_WITH"
	OpMatches       Operator = "MATCHES"
	OpIncludes      Operator = "INCLUDES"
	OpNotIncludes   Operator = "NOT_INCLUDES"
)

// Suffix returns the key suffix, e.g. "_NOT_IN". Equality has none.
func (o Operator) Suffix() string {
	if o == OpEqual {
		return ""
	}
	return "_" + string(o)
}

// Key returns the Where input key for field, e.g. "title_CONTAINS".
func (o Operator) Key(field string) string {
	return field + o.Suffix()
}

// TakesList reports whether the operator compares against a list value.
func (o Operator) TakesList() bool {
	return o == OpIn || o == OpNotIn
}

// Negated reports whether the operator is the NOT form of another.
func (o Operator) Negated() bool {
	switch o {
	case OpNot, OpNotIn, OpNotContains, OpNotStartsWith, OpNotEndsWith, OpNotIncludes:
		return true
	default:
		return false
	}
}

var (
	equalityOps   = []Operator{OpEqual, OpNot}
	membershipOps = []Operator{OpEqual, OpNot, OpIn, OpNotIn}
	orderingOps   = []Operator{OpEqual, OpNot, OpIn, OpNotIn, OpLT, OpLTE, OpGT, OpGTE}
	listOps       = []Operator{OpEqual, OpNot, OpIncludes, OpNotIncludes}
	stringOps     = []Operator{
		OpEqual, OpNot, OpIn, OpNotIn,
		OpContains, OpNotContains,
		OpStartsWith, OpNotStartsWith,
		OpEndsWith, OpNotEndsWith,
	}
)

// Operators returns the comparison operators a field supports, in the
// order they appear in the generated Where input. _MATCHES is included
// for string-like fields only when enableRegex is set.
//
// Computed, object and relationship fields have no comparison operators.
func Operators(f *ir.Field, enableRegex bool) []Operator {
	switch f.Kind {
	case ir.KindList:
		return listOps
	case ir.KindPrimitive:
	default:
		return nil
	}

	name := f.Type.Name
	switch {
	case ir.IsStringLike(name):
		if enableRegex {
			return append(append([]Operator(nil), stringOps...), OpMatches)
		}
		return stringOps
	case ir.IsNumeric(name), ir.IsTemporal(name):
		return orderingOps
	case name == ir.ScalarBoolean:
		return equalityOps
	default:
		return membershipOps
	}
}

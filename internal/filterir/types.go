package filterir

import "github.com/roach88/neoschema/internal/ir"

// Clause is one entry of a filter tree.
//
// This is a sealed interface: only types in this package implement it, so
// the translator can switch over it exhaustively.
//
// Clause types valid in a node or relationship Where:
//   - Combinator: AND / OR over child Wheres
//   - Comparison: <field>_<operator> against a literal
//   - RelationFilter: <rel> / <rel>_NOT over the target's Where
//   - ConnectionFilter: <rel>Connection / <rel>Connection_NOT
//
// Clause types valid in a connection Where:
//   - Combinator: AND / OR over child connection Wheres
//   - EdgeFilter: edge / edge_NOT over the properties Where
//   - NodeFilter: node / node_NOT over the target's Where
type Clause interface {
	clauseNode() // Marker method - seals interface to this package
}

// Where is a conjunction of clauses. Clause order is the sorted order of
// the source keys.
type Where struct {
	Clauses []Clause
}

// Empty reports whether the tree filters nothing.
func (w Where) Empty() bool {
	return len(w.Clauses) == 0
}

// CombinatorOp is AND or OR.
type CombinatorOp string

const (
	OpAnd CombinatorOp = "AND"
	OpOr  CombinatorOp = "OR"
)

// Combinator joins child trees. Each child owns the parameter prefix
// <prefix>.<Op>[<index>].
type Combinator struct {
	Op       CombinatorOp
	Children []Where
}

// EdgeFilter applies a Where to the relationship properties of a
// connection. Negated is set for the edge_NOT key.
type EdgeFilter struct {
	Key     string
	Negated bool
	Where   Where
}

// NodeFilter applies a Where to the node at the far end of a connection.
// Negated is set for keys ending in _NOT.
type NodeFilter struct {
	Key     string
	Negated bool
	Where   Where
}

// Comparison compares one field against a literal value. Value is nil for
// null comparisons.
type Comparison struct {
	Key      string
	Field    *ir.Field
	Operator Operator
	Value    any
}

// RelationFilter tests for a related node matching Where. Null is set when
// the source value was null: {actors: null} matches nodes with no related
// node at all.
type RelationFilter struct {
	Key     string
	Field   *ir.RelationField
	Negated bool
	Where   Where
	Null    bool
}

// ConnectionFilter tests for a relationship and node pair matching a
// connection Where.
type ConnectionFilter struct {
	Key     string
	Field   *ir.RelationField
	Negated bool
	Where   Where
}

func (*Combinator) clauseNode()       {}
func (*EdgeFilter) clauseNode()       {}
func (*NodeFilter) clauseNode()       {}
func (*Comparison) clauseNode()       {}
func (*RelationFilter) clauseNode()   {}
func (*ConnectionFilter) clauseNode() {}

package ir

// Directive is a sealed interface over the recognised schema directives.
// Only the types in this file implement it, so switches over a Directive
// are exhaustive.
type Directive interface {
	directiveNode() // Marker method - seals interface to this package
	DirectiveName() string
}

// Directive names as they appear in type definitions.
const (
	DirectiveID           = "id"
	DirectiveTimestamp    = "timestamp"
	DirectiveAuth         = "auth"
	DirectiveRelationship = "relationship"
	DirectiveCypher       = "cypher"
)

// IDDirective marks an identifier field, auto-generated unless disabled.
type IDDirective struct {
	AutoGenerate bool
	Unique       bool
}

func (*IDDirective) directiveNode()        {}
func (*IDDirective) DirectiveName() string { return DirectiveID }

// TimestampDirective marks a temporal field set on the listed operations.
type TimestampDirective struct {
	Operations []string // CREATE, UPDATE; empty means both
}

func (*TimestampDirective) directiveNode()        {}
func (*TimestampDirective) DirectiveName() string { return DirectiveTimestamp }

// AuthDirective carries authorization rules. Rules are kept as the raw
// GraphQL literal; evaluation happens elsewhere.
type AuthDirective struct {
	Rules string
}

func (*AuthDirective) directiveNode()        {}
func (*AuthDirective) DirectiveName() string { return DirectiveAuth }

// RelationshipDirective declares an edge to another node.
type RelationshipDirective struct {
	Type       string
	Direction  Direction
	Properties string // Name of the properties interface, may be empty
}

func (*RelationshipDirective) directiveNode()        {}
func (*RelationshipDirective) DirectiveName() string { return DirectiveRelationship }

// CypherDirective declares a computed field backed by a Cypher statement.
type CypherDirective struct {
	Statement string
}

func (*CypherDirective) directiveNode()        {}
func (*CypherDirective) DirectiveName() string { return DirectiveCypher }

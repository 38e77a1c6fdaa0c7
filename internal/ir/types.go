package ir

import "strings"

// Direction is the traversal direction of a relationship field.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// ValidDirections defines allowed relationship directions.
var ValidDirections = map[Direction]bool{
	DirectionIn:  true,
	DirectionOut: true,
}

// FieldKind classifies a field for augmentation and filtering.
type FieldKind int

const (
	// KindPrimitive is a single-valued scalar field.
	KindPrimitive FieldKind = iota
	// KindList is a list of scalars.
	KindList
	// KindObject is an enum, interface or non-node object field.
	KindObject
	// KindRelationship is a field carrying @relationship.
	KindRelationship
	// KindComputed is a field carrying @cypher.
	KindComputed
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindRelationship:
		return "relationship"
	case KindComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// TypeRef is a resolved GraphQL type reference.
type TypeRef struct {
	Name        string `json:"name"`                    // Named (innermost) type
	NonNull     bool   `json:"non_null,omitempty"`      // Outer non-null
	List        bool   `json:"list,omitempty"`          // Wrapped in a list
	ElemNonNull bool   `json:"elem_non_null,omitempty"` // List elements non-null
}

// String renders the reference in GraphQL syntax, e.g. "[Movie!]!".
func (t TypeRef) String() string {
	var b strings.Builder
	if t.List {
		b.WriteString("[")
		b.WriteString(t.Name)
		if t.ElemNonNull {
			b.WriteString("!")
		}
		b.WriteString("]")
	} else {
		b.WriteString(t.Name)
	}
	if t.NonNull {
		b.WriteString("!")
	}
	return b.String()
}

// Field is a declared field of a Node or Relationship.
type Field struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        TypeRef     `json:"type"`
	Kind        FieldKind   `json:"kind"`
	Directives  []Directive `json:"-"`
}

// ID returns the field's @id directive, or nil.
func (f *Field) ID() *IDDirective {
	for _, d := range f.Directives {
		if id, ok := d.(*IDDirective); ok {
			return id
		}
	}
	return nil
}

// Timestamp returns the field's @timestamp directive, or nil.
func (f *Field) Timestamp() *TimestampDirective {
	for _, d := range f.Directives {
		if ts, ok := d.(*TimestampDirective); ok {
			return ts
		}
	}
	return nil
}

// Cypher returns the field's @cypher directive, or nil.
func (f *Field) Cypher() *CypherDirective {
	for _, d := range f.Directives {
		if c, ok := d.(*CypherDirective); ok {
			return c
		}
	}
	return nil
}

// Generated reports whether the value of the field is produced by the
// database rather than supplied by clients.
func (f *Field) Generated() bool {
	if id := f.ID(); id != nil && id.AutoGenerate {
		return true
	}
	return f.Timestamp() != nil
}

// Entity is the capability shared by Node and Relationship: a named set of
// typed fields that can be filtered on.
type Entity interface {
	EntityName() string
	EntityFields() []*Field
	FieldByName(name string) *Field
}

// Node is a primary schema entity mapped to a vertex label.
type Node struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Interfaces     []string         `json:"interfaces,omitempty"` // Implemented user interfaces
	Fields         []*Field         `json:"fields"`
	RelationFields []*RelationField `json:"relation_fields,omitempty"`
	Auth           *AuthDirective   `json:"-"`
}

func (n *Node) EntityName() string     { return n.Name }
func (n *Node) EntityFields() []*Field { return n.Fields }

// FieldByName returns the declared field with the given name, or nil.
func (n *Node) FieldByName(name string) *Field {
	return fieldByName(n.Fields, name)
}

// RelationField returns the relationship field with the given name, or nil.
func (n *Node) RelationField(name string) *RelationField {
	for _, rf := range n.RelationFields {
		if rf.Name == name {
			return rf
		}
	}
	return nil
}

// Relationship is a properties entity attached to edges. It never carries
// relationship fields, auth or computed fields.
type Relationship struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []*Field `json:"fields"`
}

func (r *Relationship) EntityName() string     { return r.Name }
func (r *Relationship) EntityFields() []*Field { return r.Fields }

// FieldByName returns the declared field with the given name, or nil.
func (r *Relationship) FieldByName(name string) *Field {
	return fieldByName(r.Fields, name)
}

// RelationField is a Node field carrying @relationship.
type RelationField struct {
	*Field
	Type       string        `json:"type"` // Edge label, e.g. "ACTED_IN"
	Direction  Direction     `json:"direction"`
	Target     *Node         `json:"-"`
	Properties *Relationship `json:"-"` // nil when the edge has no properties
}

// UserField is a field declared on a root type (Query, Mutation).
type UserField struct {
	Field
	Arguments []Argument `json:"arguments,omitempty"`
}

// Argument is a declared argument of a user root field.
type Argument struct {
	Name    string  `json:"name"`
	Type    TypeRef `json:"type"`
	Default string  `json:"default,omitempty"` // Raw GraphQL literal
}

// Enum is a user-declared enum type, passed through augmentation.
type Enum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Interface is a user-declared interface that is not a properties entity.
type Interface struct {
	Name   string   `json:"name"`
	Fields []*Field `json:"fields"`
}

// Model is the validated entity graph built from a type definition document.
type Model struct {
	Nodes          []*Node         `json:"nodes"`
	Relationships  []*Relationship `json:"relationships"`
	Enums          []Enum          `json:"enums,omitempty"`
	Scalars        []string        `json:"scalars,omitempty"`
	Interfaces     []*Interface    `json:"interfaces,omitempty"`
	QueryFields    []*UserField    `json:"query_fields,omitempty"`
	MutationFields []*UserField    `json:"mutation_fields,omitempty"`
}

// Node returns the node with the given name, or nil.
func (m *Model) Node(name string) *Node {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Relationship returns the properties entity with the given name, or nil.
func (m *Model) Relationship(name string) *Relationship {
	for _, r := range m.Relationships {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Enum returns the enum with the given name, or nil.
func (m *Model) Enum(name string) *Enum {
	for i := range m.Enums {
		if m.Enums[i].Name == name {
			return &m.Enums[i]
		}
	}
	return nil
}

func fieldByName(fields []*Field, name string) *Field {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

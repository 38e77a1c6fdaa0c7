package augment

import (
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

func named(name string) *ast.Type {
	return ast.NamedType(name, nil)
}

func nonNull(name string) *ast.Type {
	return ast.NonNullNamedType(name, nil)
}

func listOf(elem *ast.Type) *ast.Type {
	return ast.ListType(elem, nil)
}

func nonNullList(elem *ast.Type) *ast.Type {
	return ast.NonNullListType(elem, nil)
}

func field(name string, typ *ast.Type, args ...*ast.ArgumentDefinition) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Type: typ, Arguments: args}
}

func arg(name string, typ *ast.Type) *ast.ArgumentDefinition {
	return &ast.ArgumentDefinition{Name: name, Type: typ}
}

func object(name string, fields ast.FieldList) *ast.Definition {
	return &ast.Definition{Kind: ast.Object, Name: name, Fields: fields}
}

func input(name string, fields ast.FieldList) *ast.Definition {
	return &ast.Definition{Kind: ast.InputObject, Name: name, Fields: fields}
}

func enum(name string, values ...string) *ast.Definition {
	def := &ast.Definition{Kind: ast.Enum, Name: name}
	for _, v := range values {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
	}
	return def
}

func scalar(name string) *ast.Definition {
	return &ast.Definition{Kind: ast.Scalar, Name: name}
}

// literal rebuilds a default value from its GraphQL source text.
// Composite literals are kept as raw text and printed verbatim.
func literal(raw string) *ast.Value {
	switch {
	case raw == "null":
		return &ast.Value{Kind: ast.NullValue, Raw: raw}
	case raw == "true" || raw == "false":
		return &ast.Value{Kind: ast.BooleanValue, Raw: raw}
	case strings.HasPrefix(raw, `"`):
		if s, err := strconv.Unquote(raw); err == nil {
			return &ast.Value{Kind: ast.StringValue, Raw: s}
		}
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &ast.Value{Kind: ast.IntValue, Raw: raw}
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return &ast.Value{Kind: ast.FloatValue, Raw: raw}
	}
	return &ast.Value{Kind: ast.EnumValue, Raw: raw}
}

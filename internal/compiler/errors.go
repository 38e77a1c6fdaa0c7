package compiler

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Schema error codes (E200-E299)
const (
	// Directive placement errors (E201-E212)
	ErrInterfaceOnRelationship     = "E201" // relationship target is an interface
	ErrAutogenerateArray           = "E202" // @id or @timestamp on a list
	ErrAutogenerateNonID           = "E203" // @id on a non-ID scalar
	ErrTimestampType               = "E204" // @timestamp on a non DateTime/Time field
	ErrAuthOnRelationship          = "E205" // @auth next to @relationship
	ErrAuthOnPropertiesInterface   = "E206" // @auth on a properties interface
	ErrAuthOnPropertiesField       = "E207" // @auth on a properties field
	ErrCypherOnPropertiesInterface = "E208" // @cypher on a properties interface
	ErrCypherOnPropertiesField     = "E209" // @cypher on a properties field
	ErrRelationshipOnProperties    = "E210" // @relationship on a properties field
	ErrDirectiveLocation           = "E211" // directive used on a location it does not support
	ErrRelationshipAndCypher       = "E212" // @relationship and @cypher on one field

	// Reserved names (E220-E222)
	ErrReservedTypeName  = "E220" // type name reserved for connections or Relay
	ErrReservedFieldName = "E221" // properties field name reserved for Relay
	ErrGeneratedTypeName = "E222" // type name taken by a generated type

	// Reference and structure errors (E230-E239)
	ErrUnknownRelationshipTarget = "E230" // relationship target type not declared
	ErrUnknownPropertiesEntity   = "E231" // properties interface not declared
	ErrDuplicateField            = "E232" // field declared twice on one type
	ErrInvalidRelationship       = "E233" // @relationship missing type or direction
	ErrUnknownExtension          = "E234" // extend type without a base definition
	ErrInvalidRelationshipTarget = "E235" // relationship target is not an object type
	ErrUnknownFieldType          = "E236" // field type not declared
	ErrDuplicateType             = "E237" // type declared twice

	// Document errors (E240)
	ErrSyntax = "E240" // SDL could not be parsed
)

// SchemaError is the single terminal failure of a schema build.
//
// Error returns Message unchanged: callers and tests match on the phrase.
// Type and Field locate the offending declaration for tooling.
type SchemaError struct {
	Code    string `json:"code"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return e.Message
}

// Location returns "Type.field", "Type" or "" depending on what is known.
func (e *SchemaError) Location() string {
	switch {
	case e.Type != "" && e.Field != "":
		return e.Type + "." + e.Field
	case e.Type != "":
		return e.Type
	default:
		return ""
	}
}

func typeError(code string, def *ast.Definition, message string) *SchemaError {
	return &SchemaError{
		Code:    code,
		Type:    def.Name,
		Message: message,
		Line:    line(def.Position),
	}
}

func fieldError(code string, def *ast.Definition, field *ast.FieldDefinition, message string) *SchemaError {
	return &SchemaError{
		Code:    code,
		Type:    def.Name,
		Field:   field.Name,
		Message: message,
		Line:    line(field.Position),
	}
}

func fieldErrorf(code string, def *ast.Definition, field *ast.FieldDefinition, format string, args ...any) *SchemaError {
	return fieldError(code, def, field, fmt.Sprintf(format, args...))
}

func line(pos *ast.Position) int {
	if pos == nil {
		return 0
	}
	return pos.Line
}

package compiler

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/ir"
)

// definitions is the first-pass view of a document: extensions merged,
// names indexed, properties interfaces identified.
type definitions struct {
	order      []*ast.Definition
	byName     map[string]*ast.Definition
	properties map[string]bool
}

func isRootType(name string) bool {
	switch name {
	case "Query", "Mutation", "Subscription":
		return true
	default:
		return false
	}
}

// baseName strips list and non-null wrappers.
func baseName(t *ast.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}

func isList(t *ast.Type) bool {
	return t.Elem != nil
}

// collect merges extensions into their base definitions and records the
// interfaces named by @relationship(properties:).
func collect(doc *ast.SchemaDocument) (*definitions, error) {
	defs := &definitions{
		byName:     make(map[string]*ast.Definition),
		properties: make(map[string]bool),
	}

	for _, def := range doc.Definitions {
		if _, exists := defs.byName[def.Name]; exists {
			return nil, typeError(ErrDuplicateType, def,
				fmt.Sprintf("There can be only one type named %q.", def.Name))
		}
		c := cloneDefinition(def)
		defs.order = append(defs.order, c)
		defs.byName[c.Name] = c
	}

	for _, ext := range doc.Extensions {
		base, ok := defs.byName[ext.Name]
		if !ok {
			if !isRootType(ext.Name) {
				return nil, typeError(ErrUnknownExtension, ext,
					fmt.Sprintf("Cannot extend type %q because it is not defined.", ext.Name))
			}
			c := cloneDefinition(ext)
			defs.order = append(defs.order, c)
			defs.byName[c.Name] = c
			continue
		}
		base.Directives = append(base.Directives, ext.Directives...)
		base.Interfaces = append(base.Interfaces, ext.Interfaces...)
		base.Fields = append(base.Fields, ext.Fields...)
		base.EnumValues = append(base.EnumValues, ext.EnumValues...)
	}

	for _, def := range defs.order {
		if def.Kind != ast.Object || isRootType(def.Name) {
			continue
		}
		for _, f := range def.Fields {
			d := f.Directives.ForName(ir.DirectiveRelationship)
			if d == nil {
				continue
			}
			if props, ok := argString(d, "properties"); ok && props != "" {
				defs.properties[props] = true
			}
		}
	}

	return defs, nil
}

func cloneDefinition(def *ast.Definition) *ast.Definition {
	c := *def
	c.Directives = append(ast.DirectiveList(nil), def.Directives...)
	c.Interfaces = append([]string(nil), def.Interfaces...)
	c.Fields = append(ast.FieldList(nil), def.Fields...)
	c.EnumValues = append(ast.EnumValueList(nil), def.EnumValues...)
	c.Types = append([]string(nil), def.Types...)
	return &c
}

// validate walks definitions in declaration order and returns the first
// violation.
func (defs *definitions) validate() error {
	for _, def := range defs.order {
		var err error
		switch {
		case def.Kind == ast.Object && isRootType(def.Name):
			err = defs.validateRootType(def)
		case def.Kind == ast.Object:
			err = defs.validateNode(def)
		case def.Kind == ast.Interface && defs.properties[def.Name]:
			err = defs.validateProperties(def)
		default:
			err = validateLocation(def, nil)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// typeLevel lists directives that never apply to a type declaration.
var typeLevel = []string{
	ir.DirectiveCypher,
	ir.DirectiveRelationship,
	ir.DirectiveID,
	ir.DirectiveTimestamp,
}

// validateLocation rejects recognised field directives placed on a type.
// Names in allowed were already checked by the caller.
func validateLocation(def *ast.Definition, allowed map[string]bool) error {
	for _, name := range typeLevel {
		if allowed[name] {
			continue
		}
		if def.Directives.ForName(name) != nil {
			return typeError(ErrDirectiveLocation, def,
				fmt.Sprintf("Directive \"@%s\" may not be used on %s.", name, def.Kind))
		}
	}
	return nil
}

func (defs *definitions) validateRootType(def *ast.Definition) error {
	if err := validateLocation(def, nil); err != nil {
		return err
	}
	return checkDuplicates(def)
}

func (defs *definitions) validateNode(def *ast.Definition) error {
	if r, ok := checkReserved(ReservedTypeNames, def.Name); ok {
		return typeError(ErrReservedTypeName, def, r.Message)
	}
	if err := validateLocation(def, nil); err != nil {
		return err
	}
	if err := checkDuplicates(def); err != nil {
		return err
	}
	for _, field := range def.Fields {
		if field.Directives.ForName(ir.DirectiveRelationship) != nil {
			if err := defs.validateRelationshipField(def, field); err != nil {
				return err
			}
			continue
		}
		if err := defs.validateScalarField(def, field); err != nil {
			return err
		}
	}
	return nil
}

func (defs *definitions) validateRelationshipField(def *ast.Definition, field *ast.FieldDefinition) error {
	if field.Directives.ForName(ir.DirectiveCypher) != nil {
		return fieldError(ErrRelationshipAndCypher, def, field,
			"cannot have both @relationship and @cypher on the same field")
	}
	if field.Directives.ForName(ir.DirectiveAuth) != nil {
		return fieldError(ErrAuthOnRelationship, def, field,
			"cannot have auth directive on a relationship")
	}

	rd, ok := relationshipDirective(field.Directives.ForName(ir.DirectiveRelationship))
	if !ok {
		return fieldErrorf(ErrInvalidRelationship, def, field,
			"@relationship on %s.%s requires type and direction IN or OUT", def.Name, field.Name)
	}

	targetName := baseName(field.Type)
	target, ok := defs.byName[targetName]
	if !ok {
		return fieldErrorf(ErrUnknownRelationshipTarget, def, field,
			"Unknown type %q on relationship field %s.%s", targetName, def.Name, field.Name)
	}
	switch {
	case target.Kind == ast.Interface:
		return fieldError(ErrInterfaceOnRelationship, def, field,
			"cannot have interface on relationship")
	case target.Kind != ast.Object || isRootType(target.Name):
		return fieldErrorf(ErrInvalidRelationshipTarget, def, field,
			"Relationship field %s.%s must target an object type, found %s %q",
			def.Name, field.Name, target.Kind, target.Name)
	}

	if rd.Properties != "" {
		props, ok := defs.byName[rd.Properties]
		if !ok || props.Kind != ast.Interface {
			return fieldErrorf(ErrUnknownPropertiesEntity, def, field,
				"Cannot find interface specified in %s.%s", def.Name, field.Name)
		}
	}
	return nil
}

// validateScalarField covers @id, @timestamp and the field type itself.
func (defs *definitions) validateScalarField(def *ast.Definition, field *ast.FieldDefinition) error {
	typeName := baseName(field.Type)

	if field.Directives.ForName(ir.DirectiveID) != nil {
		if isList(field.Type) {
			return fieldError(ErrAutogenerateArray, def, field, "cannot auto-generate an array")
		}
		if typeName != ir.ScalarID {
			return fieldError(ErrAutogenerateNonID, def, field, "cannot auto-generate a non ID field")
		}
	}

	if field.Directives.ForName(ir.DirectiveTimestamp) != nil {
		if isList(field.Type) {
			return fieldError(ErrAutogenerateArray, def, field, "cannot auto-generate an array")
		}
		if !ir.Timestampable(typeName) {
			return fieldError(ErrTimestampType, def, field,
				"Cannot timestamp temporal fields lacking type `DateTime` or `Time`")
		}
	}

	if !defs.knownType(typeName) {
		return fieldErrorf(ErrUnknownFieldType, def, field,
			"Unknown type %q on field %s.%s", typeName, def.Name, field.Name)
	}
	return nil
}

func (defs *definitions) validateProperties(def *ast.Definition) error {
	if r, ok := checkReserved(ReservedTypeNames, def.Name); ok {
		return typeError(ErrReservedTypeName, def, r.Message)
	}
	if def.Directives.ForName(ir.DirectiveAuth) != nil {
		return typeError(ErrAuthOnPropertiesInterface, def,
			"Cannot have @auth directive on relationship properties interface")
	}
	if def.Directives.ForName(ir.DirectiveCypher) != nil {
		return typeError(ErrCypherOnPropertiesInterface, def,
			"Cannot have @cypher directive on relationship properties interface")
	}
	if err := validateLocation(def, nil); err != nil {
		return err
	}
	if err := checkDuplicates(def); err != nil {
		return err
	}

	for _, field := range def.Fields {
		if r, ok := checkReserved(ReservedPropertyFields, field.Name); ok {
			return fieldError(ErrReservedFieldName, def, field, r.Message)
		}
		if field.Directives.ForName(ir.DirectiveAuth) != nil {
			return fieldError(ErrAuthOnPropertiesField, def, field,
				"Cannot have @auth directive on relationship property")
		}
		if field.Directives.ForName(ir.DirectiveRelationship) != nil {
			return fieldError(ErrRelationshipOnProperties, def, field,
				"Cannot have @relationship directive on relationship property")
		}
		if field.Directives.ForName(ir.DirectiveCypher) != nil {
			return fieldError(ErrCypherOnPropertiesField, def, field,
				"Cannot have @cypher directive on relationship property")
		}
		if err := defs.validateScalarField(def, field); err != nil {
			return err
		}
	}
	return nil
}

func checkDuplicates(def *ast.Definition) error {
	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		if seen[field.Name] {
			return fieldErrorf(ErrDuplicateField, def, field,
				"Duplicate field %s.%s", def.Name, field.Name)
		}
		seen[field.Name] = true
	}
	return nil
}

func (defs *definitions) knownType(name string) bool {
	if ir.IsBuiltinScalar(name) || ir.IsExtendedScalar(name) {
		return true
	}
	_, ok := defs.byName[name]
	return ok
}

func (defs *definitions) isUserScalar(name string) bool {
	def, ok := defs.byName[name]
	return ok && (def.Kind == ast.Scalar || def.Kind == ast.Enum)
}

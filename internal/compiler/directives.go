package compiler

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/neoschema/internal/ir"
)

// convertDirectives maps the recognised directives of a declaration onto
// the closed ir.Directive set. Other directives are dropped.
func convertDirectives(list ast.DirectiveList) []ir.Directive {
	var out []ir.Directive
	for _, d := range list {
		switch d.Name {
		case ir.DirectiveID:
			out = append(out, &ir.IDDirective{
				AutoGenerate: argBool(d, "autogenerate", true),
				Unique:       argBool(d, "unique", true),
			})
		case ir.DirectiveTimestamp:
			out = append(out, &ir.TimestampDirective{
				Operations: argList(d, "operations"),
			})
		case ir.DirectiveAuth:
			out = append(out, authDirective(d))
		case ir.DirectiveRelationship:
			if rd, ok := relationshipDirective(d); ok {
				out = append(out, rd)
			}
		case ir.DirectiveCypher:
			statement, _ := argString(d, "statement")
			out = append(out, &ir.CypherDirective{Statement: statement})
		}
	}
	return out
}

// authDirective keeps the rules argument as a raw GraphQL literal.
func authDirective(d *ast.Directive) *ir.AuthDirective {
	rules := ""
	if a := d.Arguments.ForName("rules"); a != nil && a.Value != nil {
		rules = a.Value.String()
	}
	return &ir.AuthDirective{Rules: rules}
}

// relationshipDirective reads @relationship(type, direction, properties).
// Returns false when type or direction is missing or invalid.
func relationshipDirective(d *ast.Directive) (*ir.RelationshipDirective, bool) {
	relType, ok := argString(d, "type")
	if !ok || relType == "" {
		return nil, false
	}
	direction, ok := argString(d, "direction")
	if !ok || !ir.ValidDirections[ir.Direction(direction)] {
		return nil, false
	}
	properties, _ := argString(d, "properties")
	return &ir.RelationshipDirective{
		Type:       relType,
		Direction:  ir.Direction(direction),
		Properties: properties,
	}, true
}

// argString returns the raw value of a scalar or enum argument.
func argString(d *ast.Directive, name string) (string, bool) {
	a := d.Arguments.ForName(name)
	if a == nil || a.Value == nil {
		return "", false
	}
	return a.Value.Raw, true
}

func argBool(d *ast.Directive, name string, def bool) bool {
	raw, ok := argString(d, name)
	if !ok {
		return def
	}
	return raw == "true"
}

// argList returns the raw values of a list argument. A single value is
// treated as a one-element list.
func argList(d *ast.Directive, name string) []string {
	a := d.Arguments.ForName(name)
	if a == nil || a.Value == nil {
		return nil
	}
	if a.Value.Kind != ast.ListValue {
		return []string{a.Value.Raw}
	}
	out := make([]string, 0, len(a.Value.Children))
	for _, child := range a.Value.Children {
		if child.Value != nil {
			out = append(out, child.Value.Raw)
		}
	}
	return out
}

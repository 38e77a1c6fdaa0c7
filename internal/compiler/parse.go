package compiler

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/roach88/neoschema/internal/ir"
)

// Parse parses a type definition document into a gqlparser AST.
//
// Only syntax is checked here. Directive definitions for @relationship and
// friends are not required in the input; Build validates their use.
func Parse(name, sdl string) (*ast.SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, &SchemaError{
			Code:    ErrSyntax,
			Message: err.Error(),
		}
	}
	return doc, nil
}

// Compile parses and builds a model in one step.
func Compile(name, sdl string) (*ir.Model, error) {
	doc, err := Parse(name, sdl)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

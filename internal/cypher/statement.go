package cypher

import (
	"fmt"
	"strings"

	"github.com/roach88/neoschema/internal/ir"
)

// MatchStatement wraps a node Where fragment in a read statement:
//
//	MATCH (this:Movie)
//	WHERE this.title = $this_where.title
//	RETURN this
func MatchStatement(node *ir.Node, varName, fragment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (%s:%s)", varName, escape(node.Name))
	if fragment != "" {
		b.WriteString("\nWHERE ")
		b.WriteString(fragment)
	}
	fmt.Fprintf(&b, "\nRETURN %s", varName)
	return b.String()
}

// ConnectionStatement wraps a connection Where fragment of relationship
// field rf in a read statement over varName:
//
//	MATCH (this:Movie)
//	MATCH (this)<-[edge:ACTED_IN]-(node:Actor)
//	WHERE edge.screenTime > $where.edge.screenTime_GT
//	RETURN this
func ConnectionStatement(node *ir.Node, varName string, rf *ir.RelationField, nodeVar, relVar, fragment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (%s:%s)\nMATCH %s", varName, escape(node.Name), Pattern(varName, relVar, rf, nodeVar))
	if fragment != "" {
		b.WriteString("\nWHERE ")
		b.WriteString(fragment)
	}
	fmt.Fprintf(&b, "\nRETURN %s", varName)
	return b.String()
}

// BindParams nests a parameter tree under the dotted prefix it was
// translated with, producing the map a driver binds. An empty prefix
// returns params unchanged.
func BindParams(prefix string, params map[string]any) map[string]any {
	if prefix == "" {
		return params
	}
	parts := strings.Split(prefix, ".")
	out := params
	for i := len(parts) - 1; i >= 0; i-- {
		out = map[string]any{parts[i]: out}
	}
	return out
}

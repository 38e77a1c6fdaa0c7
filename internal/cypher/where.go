package cypher

import (
	"fmt"
	"strings"

	"github.com/roach88/neoschema/internal/filterir"
	"github.com/roach88/neoschema/internal/ir"
)

// Translator lowers filterir trees to Cypher.
type Translator struct {
	// EnableRegex allows _MATCHES comparisons. When false they produce
	// no fragment.
	EnableRegex bool

	// OnDrop receives the path of every key the Create* helpers drop
	// while parsing.
	OnDrop func(path string)
}

// Where translates a node or relationship Where against varName.
// Clause fragments are joined with AND.
func (t *Translator) Where(w filterir.Where, varName, prefix string) (string, map[string]any) {
	params := make(map[string]any)
	var parts []string

	for _, clause := range w.Clauses {
		var frag string
		switch c := clause.(type) {
		case *filterir.Combinator:
			frag = t.combinator(c, prefix, params, func(child filterir.Where, childPrefix string) (string, map[string]any) {
				return t.Where(child, varName, childPrefix)
			})
		case *filterir.Comparison:
			frag = t.comparison(c, varName, prefix, params)
		case *filterir.RelationFilter:
			frag = t.relation(c, varName, prefix, params)
		case *filterir.ConnectionFilter:
			frag = t.connection(c, varName, prefix, params)
		case *filterir.EdgeFilter, *filterir.NodeFilter:
			// only meaningful inside a connection Where
		}
		if frag != "" {
			parts = append(parts, frag)
		}
	}

	return strings.Join(parts, " AND "), params
}

// combinator translates each child under <prefix>.<Op>[i] and groups the
// non-empty fragments. The parameter list keeps one entry per child so
// indexes line up with the prefixes.
func (t *Translator) combinator(c *filterir.Combinator, prefix string, params map[string]any, translate func(filterir.Where, string) (string, map[string]any)) string {
	op := string(c.Op)
	var frags []string
	childParams := make([]any, 0, len(c.Children))

	for i, child := range c.Children {
		frag, p := translate(child, fmt.Sprintf("%s[%d]", paramPath(prefix, op), i))
		if frag != "" {
			frags = append(frags, frag)
		}
		childParams = append(childParams, p)
	}

	if len(frags) == 0 {
		return ""
	}
	params[op] = childParams
	return "(" + strings.Join(frags, " "+op+" ") + ")"
}

func (t *Translator) comparison(c *filterir.Comparison, varName, prefix string, params map[string]any) string {
	if c.Field == nil {
		return ""
	}
	if c.Operator == filterir.OpMatches && !t.EnableRegex {
		return ""
	}

	property := varName + "." + escape(c.Field.Name)
	if c.Value == nil {
		switch c.Operator {
		case filterir.OpEqual:
			return property + " IS NULL"
		case filterir.OpNot:
			return property + " IS NOT NULL"
		default:
			return ""
		}
	}

	ref := "$" + paramPath(prefix, c.Key)
	var frag string
	switch c.Operator {
	case filterir.OpEqual, filterir.OpNot:
		frag = property + " = " + ref
	case filterir.OpIn, filterir.OpNotIn:
		frag = property + " IN " + ref
	case filterir.OpLT:
		frag = property + " < " + ref
	case filterir.OpLTE:
		frag = property + " <= " + ref
	case filterir.OpGT:
		frag = property + " > " + ref
	case filterir.OpGTE:
		frag = property + " >= " + ref
	case filterir.OpContains, filterir.OpNotContains:
		frag = property + " CONTAINS " + ref
	case filterir.OpStartsWith, filterir.OpNotStartsWith:
		frag = property + " STARTS WITH " + ref
	case filterir.OpEndsWith, filterir.OpNotEndsWith:
		frag = property + " ENDS WITH " + ref
	case filterir.OpMatches:
		frag = property + " =~ " + ref
	case filterir.OpIncludes, filterir.OpNotIncludes:
		frag = ref + " IN " + property
	default:
		return ""
	}

	params[c.Key] = c.Value
	if c.Operator.Negated() {
		frag = "(NOT " + frag + ")"
	}
	return frag
}

// relation tests for a related node with an EXISTS subquery. The related
// node is bound as <varName>_<field>.
func (t *Translator) relation(c *filterir.RelationFilter, varName, prefix string, params map[string]any) string {
	rf := c.Field
	if rf == nil || rf.Target == nil {
		return ""
	}
	inner := varName + "_" + rf.Name
	pattern := Pattern(varName, "", rf, inner)

	if c.Null {
		frag := exists(pattern, "")
		if c.Negated {
			return frag
		}
		return "NOT " + frag
	}

	where, p := t.Where(c.Where, inner, paramPath(prefix, c.Key))
	if where != "" {
		params[c.Key] = p
	}
	frag := exists(pattern, where)
	if c.Negated {
		frag = "NOT " + frag
	}
	return frag
}

// connection crosses a connection boundary. The edge and far node are bound
// as <varName>_<field>Connection_relationship and _node.
func (t *Translator) connection(c *filterir.ConnectionFilter, varName, prefix string, params map[string]any) string {
	rf := c.Field
	if rf == nil || rf.Target == nil {
		return ""
	}
	base := varName + "_" + rf.Name + "Connection"
	nodeVar, relVar := base+"_node", base+"_relationship"

	where, p := t.ConnectionWhere(c.Where, nodeVar, relVar, paramPath(prefix, c.Key))
	if where != "" {
		params[c.Key] = p
	}
	frag := exists(Pattern(varName, relVar, rf, nodeVar), where)
	if c.Negated {
		frag = "NOT " + frag
	}
	return frag
}

// Pattern renders (from)-[relVar:TYPE]->(to:Target) in the direction of
// rf. relVar may be empty.
func Pattern(from, relVar string, rf *ir.RelationField, to string) string {
	rel := "[" + relVar + ":" + escape(rf.Type) + "]"
	node := "(" + to + ":" + escape(rf.Target.Name) + ")"
	if rf.Direction == ir.DirectionIn {
		return "(" + from + ")<-" + rel + "-" + node
	}
	return "(" + from + ")-" + rel + "->" + node
}

func exists(pattern, where string) string {
	if where == "" {
		return "EXISTS { MATCH " + pattern + " }"
	}
	return "EXISTS { MATCH " + pattern + " WHERE " + where + " }"
}

func paramPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// escape backquotes names that are not plain identifiers.
func escape(name string) string {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return "`" + strings.ReplaceAll(name, "`", "``") + "`"
		}
	}
	return name
}

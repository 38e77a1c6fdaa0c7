package cypher

import (
	"strings"

	"github.com/roach88/neoschema/internal/filterir"
	"github.com/roach88/neoschema/internal/ir"
)

// ConnectionWhere translates a connection Where. Edge filters apply to
// relVar, node filters to nodeVar, and negated variants are wrapped in
// NOT. Fragments are joined with AND.
//
// Parameters nest under the filter key: an edge filter at prefix p binds
// $p.edge.<field>, a combinator child binds $p.AND[i].<...>.
func (t *Translator) ConnectionWhere(w filterir.Where, nodeVar, relVar, prefix string) (string, map[string]any) {
	params := make(map[string]any)
	var parts []string

	for _, clause := range w.Clauses {
		var frag string
		switch c := clause.(type) {
		case *filterir.Combinator:
			frag = t.combinator(c, prefix, params, func(child filterir.Where, childPrefix string) (string, map[string]any) {
				return t.ConnectionWhere(child, nodeVar, relVar, childPrefix)
			})
		case *filterir.EdgeFilter:
			if relVar == "" {
				continue
			}
			frag = t.scoped(c.Key, c.Negated, c.Where, relVar, prefix, params)
		case *filterir.NodeFilter:
			frag = t.scoped(c.Key, c.Negated, c.Where, nodeVar, prefix, params)
		case *filterir.Comparison, *filterir.RelationFilter, *filterir.ConnectionFilter:
			// owned by the node or edge Where one level down
		}
		if frag != "" {
			parts = append(parts, frag)
		}
	}

	return strings.Join(parts, " AND "), params
}

// scoped translates the Where under key against varName.
func (t *Translator) scoped(key string, negated bool, w filterir.Where, varName, prefix string, params map[string]any) string {
	frag, p := t.Where(w, varName, paramPath(prefix, key))
	if frag == "" {
		return ""
	}
	params[key] = p
	if negated {
		return "(NOT " + frag + ")"
	}
	return frag
}

// CreateConnectionWhere parses a raw connection filter against node and
// rel and translates it. rel may be nil when the relationship carries no
// properties; relVar is then ignored.
func (t *Translator) CreateConnectionWhere(raw map[string]any, node *ir.Node, nodeVar string, rel *ir.Relationship, relVar, prefix string) (string, map[string]any) {
	w := filterir.ParseConnectionWhere(raw, node, rel, t.parseOptions())
	if rel == nil {
		relVar = ""
	}
	return t.ConnectionWhere(w, nodeVar, relVar, prefix)
}

// CreateWhere parses a raw node or relationship filter and translates it.
func (t *Translator) CreateWhere(raw map[string]any, entity ir.Entity, varName, prefix string) (string, map[string]any) {
	w := filterir.ParseWhere(raw, entity, t.parseOptions())
	return t.Where(w, varName, prefix)
}

func (t *Translator) parseOptions() filterir.Options {
	return filterir.Options{EnableRegex: t.EnableRegex, OnDrop: t.OnDrop}
}

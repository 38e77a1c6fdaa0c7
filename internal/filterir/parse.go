package filterir

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/neoschema/internal/ir"
)

// Key prefixes owned by a connection Where.
const (
	edgePrefix = "edge"
	nodePrefix = "node"
	notSuffix  = "_NOT"
)

// Options controls parsing.
type Options struct {
	// EnableRegex accepts _MATCHES keys. When false they are dropped.
	EnableRegex bool

	// OnDrop, when set, is called with the path of every dropped key,
	// e.g. "AND[1].title_SIMILAR".
	OnDrop func(path string)
}

// ParseWhere parses a node or relationship Where mapping.
//
// Relationship and connection keys are recognised only when entity is a
// *ir.Node.
func ParseWhere(raw map[string]any, entity ir.Entity, opts Options) Where {
	p := &parser{opts: opts}
	return p.where(raw, entity, "")
}

// ParseConnectionWhere parses a connection Where mapping. Keys starting
// with "edge" go to rel, keys starting with "node" or node.Name go to
// node. rel may be nil, in which case edge keys are dropped.
func ParseConnectionWhere(raw map[string]any, node *ir.Node, rel *ir.Relationship, opts Options) Where {
	p := &parser{opts: opts}
	return p.connectionWhere(raw, node, rel, "")
}

type parser struct {
	opts Options
}

func (p *parser) drop(path string) {
	if p.opts.OnDrop != nil {
		p.opts.OnDrop(path)
	}
}

func (p *parser) where(raw map[string]any, entity ir.Entity, path string) Where {
	var w Where
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		keyPath := joinPath(path, key)

		if op, ok := combinatorOp(key); ok {
			children, ok := p.children(value, keyPath, func(child map[string]any, childPath string) Where {
				return p.where(child, entity, childPath)
			})
			if !ok {
				p.drop(keyPath)
				continue
			}
			w.Clauses = append(w.Clauses, &Combinator{Op: op, Children: children})
			continue
		}

		if node, ok := entity.(*ir.Node); ok {
			if clause, matched := p.relation(key, value, node, keyPath); matched {
				if clause == nil {
					p.drop(keyPath)
					continue
				}
				w.Clauses = append(w.Clauses, clause)
				continue
			}
		}

		if clause := p.comparison(key, value, entity); clause != nil {
			w.Clauses = append(w.Clauses, clause)
			continue
		}
		p.drop(keyPath)
	}
	return w
}

func (p *parser) connectionWhere(raw map[string]any, node *ir.Node, rel *ir.Relationship, path string) Where {
	var w Where
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		keyPath := joinPath(path, key)

		if op, ok := combinatorOp(key); ok {
			children, ok := p.children(value, keyPath, func(child map[string]any, childPath string) Where {
				return p.connectionWhere(child, node, rel, childPath)
			})
			if !ok {
				p.drop(keyPath)
				continue
			}
			w.Clauses = append(w.Clauses, &Combinator{Op: op, Children: children})
			continue
		}

		m, isMap := value.(map[string]any)
		switch {
		case strings.HasPrefix(key, edgePrefix):
			if rel == nil || !isMap {
				p.drop(keyPath)
				continue
			}
			w.Clauses = append(w.Clauses, &EdgeFilter{
				Key:     key,
				Negated: key == edgePrefix+notSuffix,
				Where:   p.where(m, rel, keyPath),
			})
		case strings.HasPrefix(key, nodePrefix) || strings.HasPrefix(key, node.Name):
			if !isMap {
				p.drop(keyPath)
				continue
			}
			w.Clauses = append(w.Clauses, &NodeFilter{
				Key:     key,
				Negated: strings.HasSuffix(key, notSuffix),
				Where:   p.where(m, node, keyPath),
			})
		default:
			p.drop(keyPath)
		}
	}
	return w
}

// relation matches the four relationship keys of a node field. matched is
// true when key belongs to a relationship field; clause is nil when the
// value has the wrong shape.
func (p *parser) relation(key string, value any, node *ir.Node, path string) (clause Clause, matched bool) {
	for _, rf := range node.RelationFields {
		switch key {
		case rf.Name, rf.Name + notSuffix:
			negated := key != rf.Name
			if value == nil {
				return &RelationFilter{Key: key, Field: rf, Negated: negated, Null: true}, true
			}
			m, ok := value.(map[string]any)
			if !ok {
				return nil, true
			}
			return &RelationFilter{
				Key:     key,
				Field:   rf,
				Negated: negated,
				Where:   p.where(m, rf.Target, path),
			}, true

		case rf.Name + "Connection", rf.Name + "Connection" + notSuffix:
			m, ok := value.(map[string]any)
			if !ok {
				return nil, true
			}
			return &ConnectionFilter{
				Key:     key,
				Field:   rf,
				Negated: strings.HasSuffix(key, notSuffix),
				Where:   p.connectionWhere(m, rf.Target, rf.Properties, path),
			}, true
		}
	}
	return nil, false
}

// comparison matches <field><suffix> against the operators the field
// supports. Returns nil when nothing matches or the value has the wrong
// shape.
func (p *parser) comparison(key string, value any, entity ir.Entity) Clause {
	for _, f := range entity.EntityFields() {
		if !strings.HasPrefix(key, f.Name) {
			continue
		}
		for _, op := range Operators(f, p.opts.EnableRegex) {
			if op.Key(f.Name) != key {
				continue
			}
			if value == nil && op != OpEqual && op != OpNot {
				return nil
			}
			if op.TakesList() {
				list, ok := asList(value)
				if !ok {
					return nil
				}
				value = list
			}
			return &Comparison{Key: key, Field: f, Operator: op, Value: value}
		}
	}
	return nil
}

// children decodes the value of an AND/OR key. Elements that are not
// mappings are dropped and stand as empty filters at their position.
func (p *parser) children(value any, path string, parse func(map[string]any, string) Where) ([]Where, bool) {
	list, ok := asList(value)
	if !ok {
		return nil, false
	}
	out := make([]Where, 0, len(list))
	for i, elem := range list {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		m, ok := elem.(map[string]any)
		if !ok {
			p.drop(childPath)
			out = append(out, Where{})
			continue
		}
		out = append(out, parse(m, childPath))
	}
	return out, true
}

func combinatorOp(key string) (CombinatorOp, bool) {
	switch CombinatorOp(key) {
	case OpAnd:
		return OpAnd, true
	case OpOr:
		return OpOr, true
	default:
		return "", false
	}
}

// asList accepts the list shapes produced by JSON and YAML decoding as
// well as typed Go slices of mappings.
func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

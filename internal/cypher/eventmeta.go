package cypher

import (
	"fmt"
	"strings"
)

// EventKind is the mutation an event describes.
type EventKind string

const (
	EventCreate EventKind = "create"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// DefaultMetaSuffix names the bound metadata variable, e.g. this_meta.
const DefaultMetaSuffix = "meta"

// ParseEventKind validates an event kind name.
func ParseEventKind(s string) (EventKind, error) {
	switch k := EventKind(strings.ToLower(s)); k {
	case EventCreate, EventUpdate, EventDelete:
		return k, nil
	default:
		return "", fmt.Errorf("unknown event kind %q: must be create, update or delete", s)
	}
}

// EventEmitter builds event metadata fragments.
type EventEmitter struct {
	// Suffix of the bound variable. Empty means DefaultMetaSuffix.
	Suffix string
}

// Meta returns a WITH clause binding <nodeVar>_<suffix> to
//
//	{ event, id, properties: { old, new }, timestamp }
//
// create carries no old snapshot and delete no new one. update projects
// the current node into both; telling pre- and post-images apart is up to
// where the caller places the clause.
func (e EventEmitter) Meta(kind EventKind, nodeVar string) (string, error) {
	if nodeVar == "" {
		return "", fmt.Errorf("event metadata requires a node variable")
	}

	snapshot := nodeVar + " { .* }"
	var oldValue, newValue string
	switch kind {
	case EventCreate:
		oldValue, newValue = "null", snapshot
	case EventUpdate:
		oldValue, newValue = snapshot, snapshot
	case EventDelete:
		oldValue, newValue = snapshot, "null"
	default:
		return "", fmt.Errorf("unknown event kind %q", kind)
	}

	suffix := e.Suffix
	if suffix == "" {
		suffix = DefaultMetaSuffix
	}

	return fmt.Sprintf(
		"WITH %s, { event: %q, id: id(%s), properties: { old: %s, new: %s }, timestamp: timestamp() } AS %s_%s",
		nodeVar, string(kind), nodeVar, oldValue, newValue, nodeVar, suffix,
	), nil
}

// EventMeta is Meta with the default suffix.
func EventMeta(kind EventKind, nodeVar string) (string, error) {
	return EventEmitter{}.Meta(kind, nodeVar)
}

package compiler

import "strings"

// MatchKind distinguishes exact-name rules from substring rules in the
// reserved table.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchContains
)

// ReservedName pairs a reserved token with the message reported when a
// declaration uses it.
type ReservedName struct {
	Token   string
	Match   MatchKind
	Message string
}

// ReservedTypeNames applies to node and relationship properties names.
var ReservedTypeNames = []ReservedName{
	{
		Token:   "PageInfo",
		Match:   MatchExact,
		Message: "Type or Interface with name `PageInfo` reserved to support the pagination model of connections. See https://relay.dev/graphql/connections.htm#sec-Reserved-Types for more information.",
	},
	{
		Token:   "Connection",
		Match:   MatchContains,
		Message: `Type or Interface with name ending "Connection" are reserved to support the pagination model of connections. See https://relay.dev/graphql/connections.htm#sec-Reserved-Types for more information.`,
	},
	{
		Token:   "Node",
		Match:   MatchExact,
		Message: "Type or Interface with name `Node` reserved to support Relay. See https://relay.dev/graphql/ for more information.",
	},
}

// ReservedPropertyFields applies to field names of relationship properties.
var ReservedPropertyFields = []ReservedName{
	{
		Token:   "node",
		Match:   MatchExact,
		Message: "Interface field name 'node' reserved to support relay See https://relay.dev/graphql/",
	},
	{
		Token:   "cursor",
		Match:   MatchExact,
		Message: "Interface field name 'cursor' reserved to support relay See https://relay.dev/graphql/",
	},
}

// Matches reports whether name collides with the entry.
func (r ReservedName) Matches(name string) bool {
	switch r.Match {
	case MatchExact:
		return name == r.Token
	case MatchContains:
		return strings.Contains(name, r.Token)
	default:
		return false
	}
}

// checkReserved returns the first entry of table that name collides with.
func checkReserved(table []ReservedName, name string) (ReservedName, bool) {
	for _, r := range table {
		if r.Matches(name) {
			return r, true
		}
	}
	return ReservedName{}, false
}

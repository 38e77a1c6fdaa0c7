// Package filterir defines the typed filter tree consumed by the Cypher
// translator.
//
// A filter argument arrives as an untyped mapping whose keys follow the
// generated Where input naming (AND, OR, title_CONTAINS, actors_NOT,
// actorsConnection, edge, node_NOT, ...). Parsing inspects those key
// prefixes exactly once and produces a closed set of clause variants.
// Translation is then an exhaustive type switch over Clause.
//
// Keys are visited in sorted order. Keys that name no field, operator or
// combinator, and values of the wrong shape, are dropped.
package filterir

// Package cypher lowers filter trees into Cypher fragments and builds the
// small statements the toolkit emits itself.
//
// Values are never interpolated into fragment text. Every literal is bound
// in a parameter tree that mirrors the filter tree and is referenced as
// $<prefix>.<key>, so the same field filtered at different depths gets
// distinct parameter paths (AND[0] vs AND[1]).
//
// An empty filter yields an empty fragment and an empty parameter tree.
// Callers treat the empty fragment as "no filter".
package cypher

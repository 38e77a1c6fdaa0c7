// Package augment derives the generated GraphQL surface of a model.
//
// For every node type it emits the object type itself, Where, Options,
// Sort, Create/Update inputs, mutation responses, connection types for
// each relationship field and, when enabled, an aggregate selection.
// Relationship properties types are emitted once per distinct
// ir.Relationship, however many fields reference them.
//
// Output order follows declaration order only, so augmenting the same
// model twice prints byte-identical SDL.
package augment

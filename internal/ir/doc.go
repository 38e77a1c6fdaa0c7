// Package ir provides the entity model shared by the schema compiler, the
// augmentation engine and the filter translator.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - The model is built once by the compiler and is read-only afterwards.
//   - A Relationship (properties entity) is shared by pointer between every
//     RelationField that references it. Identity, not structural equality,
//     decides whether two fields use the same properties.
//   - Directives are a closed set (see Directive). Unrecognised directives
//     are not represented in the model.
//   - Every slice is in declaration order. Nothing observable is derived
//     from map iteration.
package ir

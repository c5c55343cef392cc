// Package model defines the in-memory definition trees the composer works on.
//
// A definition is a pair of parallel trees:
//
//   - the field tree: a FieldSet whose entries are Nodes, either a *Field
//     (leaf, identified by its submit name) or a nested *FieldSet
//   - the layout tree: a DisplayMapper whose DisplayMappings bind a field
//     reference, or a nested DisplayMapper, to a UISet
//
// Definitions come in three tiers: SystemDef, SharedDef (a set of
// SharedGroups) and the local Definition. Every value in this package is
// treated as an immutable snapshot by the composer; Clone methods produce
// deep copies whenever a tree has to be changed.
package model

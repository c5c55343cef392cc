// Package compose combines a system definition, shared groups and a local
// definition into one composed definition, and extracts the local part of
// a composed definition back out.
//
// A merge runs a fixed pipeline:
//
//  1. Tag every shared group's fields with the group's name.
//  2. Validate the shared groups the local definition includes.
//  3. Validate the system fields it excludes.
//  4. Compute the real exclusion and inclusion lists. Mandatory system
//     fields are never excluded and groups carrying mandatory fields are
//     always included.
//  5. Re-tag the local tree with the tier every node comes from.
//  6. Merge the field tree, then the layout tree, tier by tier.
//  7. Re-derive the lists from what actually survived in the result.
//
// Demerge runs the same validation and diffs instead of overlaying.
// Both are all-or-nothing: on failure no partial definition is returned.
package compose

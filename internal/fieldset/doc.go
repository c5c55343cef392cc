// Package fieldset merges and demerges field trees.
//
// Merge walks the higher-tier (source) tree and folds every entry into the
// lower-tier (target) tree: same-named fields are merged attribute by
// attribute with target values winning, same-named sets are merged
// recursively, and source-only entries are added unchanged. Demerge is the
// inverse diff and keeps only what the target overrides.
//
// A few attributes are never overlaid. Data type, validation rules, the
// force-binary flag and backend column definitions are conflict-checked,
// and the system-mandatory and system-internal flags always come from the
// source.
package fieldset

// Package overlay merges and diffs UI sets across definition tiers.
//
// Resolution order is fixed: a UI set's default-set reference is expanded
// against its own definition's pool first, and only the expanded set takes
// part in the cross-tier overlay. Attributes set on the lower tier always
// win; unset attributes inherit.
package overlay

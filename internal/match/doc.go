// Package match ranks definition names by similarity.
//
// It backs the "did you mean" suggestions attached to unresolved group,
// field and default-set references. Names are normalized (case folded,
// separators and the system prefix removed) before their edit distance
// is compared.
package match

// Package diagnostic provides structured warnings, errors, and typed
// composition failures for the definition composer.
//
// Key capabilities:
//   - Diagnostics: the validation context that collects non-fatal
//     findings (group/field mismatches, attribute-level checks)
//   - Error: a coded, terminal failure raised by merge or demerge,
//     matched with errors.Is against the Err* sentinels
//   - Suggestions for names that failed to resolve
package diagnostic

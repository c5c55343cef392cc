// Package layout merges and demerges display mapper trees.
//
// A display mapper lists, in order, how the fields of one field set are
// presented. Mappings either reference a field, or attach a nested mapper
// for a child field set. Merge overlays a lower-tier mapper onto a
// higher-tier one: matching mappings are found anywhere below the source,
// their UI sets are overlaid and nested mappers are merged recursively.
// Source mappings the lower tier never mentions are appended.
//
// Every merge renumbers the resulting tree so that mapper identifiers
// form the dense sequence 1..N, depth-first.
package layout

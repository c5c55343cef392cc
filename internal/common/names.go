package common

import "slices"

// NameSet is an unordered set of case-sensitive names.
type NameSet map[string]struct{}

// NewNameSet builds a set from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

// Has reports whether name is in the set. A nil set is empty.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Sorted returns the members in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}

	slices.Sort(out)

	return out
}

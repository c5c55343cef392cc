package common

import "slices"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// Filter returns the elements of s for which keep returns true.
// The result is always a fresh slice; s is not modified.
func Filter[S ~[]E, E any](s S, keep func(E) bool) S {
	out := make(S, 0, len(s))

	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}

// Dedupe returns s without repeated elements, keeping first occurrences in order.
func Dedupe[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}

// CloneOrNil copies s, preserving the distinction between nil and empty.
func CloneOrNil[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}

	return slices.Clone(s)
}

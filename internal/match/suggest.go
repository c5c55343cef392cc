package match

import (
	"cmp"
	"slices"
)

const (
	// MinScore is the lowest similarity worth suggesting.
	MinScore = 0.6
	// MaxSuggestions caps the suggestions returned for one name.
	MaxSuggestions = 3
)

// Candidate is a known name scored against an unresolved one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns them best first.
// Ties keep alphabetical order. Exact duplicates of name are skipped.
func Rank(name string, candidates []string) []Candidate {
	norm := Normalize(name)

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == name {
			continue
		}

		out = append(out, Candidate{Name: c, Score: Similarity(norm, Normalize(c))})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to MaxSuggestions candidates scoring at least
// MinScore against name.
func Suggest(name string, candidates []string) []string {
	var out []string

	for _, c := range Rank(name, candidates) {
		if c.Score < MinScore || len(out) == MaxSuggestions {
			break
		}

		out = append(out, c.Name)
	}

	return out
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"author", "autor", 1},
		{"Author", "author", 1},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("title", "title"), 1e-9)
	assert.InDelta(t, 0.6, Similarity("title", "tilte"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"sys_title":    "title",
		"SYS_Title":    "title",
		"sys_":         "sys",
		"Author Info":  "authorinfo",
		"author-info":  "authorinfo",
		"page.summary": "pagesummary",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestSuggest(t *testing.T) {
	groups := []string{"Author", "Gallery", "Summary", "Authors", "SEO"}

	assert.Equal(t, []string{"Author", "Authors"}, Suggest("autor", groups))
	assert.Equal(t, []string{"Summary"}, Suggest("sumary", groups))
	assert.Empty(t, Suggest("xyz", groups))
	assert.Empty(t, Suggest("Author", []string{"Author"}))

	assert.Equal(t, []string{"sys_title"}, Suggest("title", []string{"sys_title", "sys_reminder"}))
}

func TestRank_Order(t *testing.T) {
	got := Rank("ab", []string{"b", "a", "ab2"})

	assert.Equal(t, "ab2", got[0].Name)
	assert.Equal(t, []string{"a", "b"}, []string{got[1].Name, got[2].Name})
}

package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("merge article: %w", IncompatibleOverride("title", "data type"))

	assert.ErrorIs(t, err, ErrIncompatibleOverride)
	assert.NotErrorIs(t, err, ErrDuplicateMergedName)

	var de *Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, "title", de.Subject)
	assert.Equal(t, "data type", de.Attribute)
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "unknown default set",
			err:  UnknownDefaultSet("plain"),
			want: `[unknown_default_set] default UI set "plain" not found`,
		},
		{
			name: "incompatible override",
			err:  IncompatibleOverride("body", "validation rules"),
			want: `[incompatible_override] field "body": incompatible override of validation rules`,
		},
		{
			name: "system excludes",
			err:  SystemExcludeInvalid([]string{"a", "b"}),
			want: "[system_exclude_invalid] excluded system fields not found: a, b",
		},
		{
			name: "with suggestions",
			err:  SharedGroupNotFound("Autor").WithSuggestions([]string{"Author"}),
			want: `[shared_group_not_found] shared group "Autor" not found (did you mean: Author?)`,
		},
		{
			name: "duplicate shared field",
			err:  DuplicateSharedField("summary", []string{"A", "B"}),
			want: `[duplicate_shared_field] field "summary" is defined in more than one included shared group: A, B`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(WarnGroupNameMismatch, "group name differs from field set name", "Author", "")
	d.AddInfo("note", "informational", "", "")

	var other Diagnostics
	other.AddError("empty_name", "field has no name", "article", "fields[2]")

	d.Merge(other)

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.True(t, d.HasWarning(WarnGroupNameMismatch))
	assert.False(t, d.HasWarning(WarnMissingOrInvalidChildMapping))
	require.Error(t, d.Error())
	assert.Equal(t, "[article] fields[2]: [empty_name] field has no name", d.Error().Error())
}

func TestDiagnostics_AddBySeverity(t *testing.T) {
	var d Diagnostics

	d.Add(Diagnostic{Severity: DiagnosticError, Code: "a"})
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: "b"})
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: "c"})

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
}

func TestDiagnostic_StringWithSuggestions(t *testing.T) {
	d := Diagnostic{Code: "x", Message: "unknown group", Suggestions: []string{"Author", "Authors"}}
	assert.Equal(t, "[x] unknown group (did you mean: Author, Authors?)", d.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

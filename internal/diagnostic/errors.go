package diagnostic

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a kind of terminal composition failure.
type ErrorCode string

const (
	// CodeUnknownDefaultSet indicates a UI set names a default set absent from the pool.
	CodeUnknownDefaultSet ErrorCode = "unknown_default_set"
	// CodeIncompatibleOverride indicates two tiers define an attribute that must not differ.
	CodeIncompatibleOverride ErrorCode = "incompatible_override"
	// CodeDuplicateMergedName indicates a name resolves to a field in one tier and a set in another.
	CodeDuplicateMergedName ErrorCode = "duplicate_merged_name"
	// CodeExcludedFieldMissing indicates an exclusion names a field absent from the tree.
	CodeExcludedFieldMissing ErrorCode = "excluded_field_missing"
	// CodeUnusedMapper indicates a child layout found no placeholder to attach to.
	CodeUnusedMapper ErrorCode = "unused_mapper"
	// CodeInvalidChildMapping indicates a local nested mapper where the source has none.
	CodeInvalidChildMapping ErrorCode = "invalid_child_mapping"
	// CodeInvalidChildFields indicates a local child mapper maps fields the source child lacks.
	CodeInvalidChildFields ErrorCode = "invalid_child_fields"
	// CodeSharedGroupNotFound indicates an included shared group does not exist.
	CodeSharedGroupNotFound ErrorCode = "shared_group_not_found"
	// CodeSystemExcludeInvalid indicates system excludes naming unknown system fields.
	CodeSystemExcludeInvalid ErrorCode = "system_exclude_invalid"
	// CodeSharedExcludeInvalid indicates shared excludes outside every included group.
	CodeSharedExcludeInvalid ErrorCode = "shared_exclude_invalid"
	// CodeDuplicateSharedField indicates a field defined by two active shared groups.
	CodeDuplicateSharedField ErrorCode = "duplicate_shared_field"
	// CodeInvalidSharedGroupKind indicates a shared group whose field set is a parent set.
	CodeInvalidSharedGroupKind ErrorCode = "invalid_shared_group_kind"
)

// Error is a terminal failure of a merge or demerge call.
type Error struct {
	Code ErrorCode
	// Subject is the field, set, group or default set the failure is about.
	Subject string
	// Attribute names the conflicting attribute for incompatible overrides.
	Attribute string
	// Names lists every offending name for list-valued failures.
	Names []string
	// Suggestions are close matches for names that failed to resolve.
	Suggestions []string
}

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrUnknownDefaultSet      = &Error{Code: CodeUnknownDefaultSet}
	ErrIncompatibleOverride   = &Error{Code: CodeIncompatibleOverride}
	ErrDuplicateMergedName    = &Error{Code: CodeDuplicateMergedName}
	ErrExcludedFieldMissing   = &Error{Code: CodeExcludedFieldMissing}
	ErrUnusedMapper           = &Error{Code: CodeUnusedMapper}
	ErrInvalidChildMapping    = &Error{Code: CodeInvalidChildMapping}
	ErrInvalidChildFields     = &Error{Code: CodeInvalidChildFields}
	ErrSharedGroupNotFound    = &Error{Code: CodeSharedGroupNotFound}
	ErrSystemExcludeInvalid   = &Error{Code: CodeSystemExcludeInvalid}
	ErrSharedExcludeInvalid   = &Error{Code: CodeSharedExcludeInvalid}
	ErrDuplicateSharedField   = &Error{Code: CodeDuplicateSharedField}
	ErrInvalidSharedGroupKind = &Error{Code: CodeInvalidSharedGroupKind}
)

// Error formats the failure as "[code] message".
func (e *Error) Error() string {
	var msg string

	switch e.Code {
	case CodeUnknownDefaultSet:
		msg = fmt.Sprintf("default UI set %q not found", e.Subject)
	case CodeIncompatibleOverride:
		msg = fmt.Sprintf("field %q: incompatible override of %s", e.Subject, e.Attribute)
	case CodeDuplicateMergedName:
		msg = fmt.Sprintf("%q is a field in one definition and a field set in another", e.Subject)
	case CodeExcludedFieldMissing:
		msg = fmt.Sprintf("excluded field %q not found", e.Subject)
	case CodeUnusedMapper:
		msg = fmt.Sprintf("no mapping found to attach child mapper for field set %q", e.Subject)
	case CodeInvalidChildMapping:
		msg = fmt.Sprintf("mapping %q has a child mapper but the source mapping does not", e.Subject)
	case CodeInvalidChildFields:
		msg = fmt.Sprintf("child mapper for %q maps fields not in the source: %s",
			e.Subject, strings.Join(e.Names, ", "))
	case CodeSharedGroupNotFound:
		msg = fmt.Sprintf("shared group %q not found", e.Subject)
	case CodeSystemExcludeInvalid:
		msg = "excluded system fields not found: " + strings.Join(e.Names, ", ")
	case CodeSharedExcludeInvalid:
		msg = "excluded shared fields not in any included group: " + strings.Join(e.Names, ", ")
	case CodeDuplicateSharedField:
		msg = fmt.Sprintf("field %q is defined in more than one included shared group: %s",
			e.Subject, strings.Join(e.Names, ", "))
	case CodeInvalidSharedGroupKind:
		msg = fmt.Sprintf("shared group %q must not be a parent field set", e.Subject)
	default:
		msg = e.Subject
	}

	if len(e.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// UnknownDefaultSet builds a CodeUnknownDefaultSet failure.
func UnknownDefaultSet(name string) *Error {
	return &Error{Code: CodeUnknownDefaultSet, Subject: name}
}

// IncompatibleOverride builds a CodeIncompatibleOverride failure.
func IncompatibleOverride(field, attribute string) *Error {
	return &Error{Code: CodeIncompatibleOverride, Subject: field, Attribute: attribute}
}

// DuplicateMergedName builds a CodeDuplicateMergedName failure.
func DuplicateMergedName(name string) *Error {
	return &Error{Code: CodeDuplicateMergedName, Subject: name}
}

// ExcludedFieldMissing builds a CodeExcludedFieldMissing failure.
func ExcludedFieldMissing(name string) *Error {
	return &Error{Code: CodeExcludedFieldMissing, Subject: name}
}

// UnusedMapper builds a CodeUnusedMapper failure.
func UnusedMapper(fieldSet string) *Error {
	return &Error{Code: CodeUnusedMapper, Subject: fieldSet}
}

// InvalidChildMapping builds a CodeInvalidChildMapping failure.
func InvalidChildMapping(fieldRef string) *Error {
	return &Error{Code: CodeInvalidChildMapping, Subject: fieldRef}
}

// InvalidChildFields builds a CodeInvalidChildFields failure.
func InvalidChildFields(fieldSet string, refs []string) *Error {
	return &Error{Code: CodeInvalidChildFields, Subject: fieldSet, Names: refs}
}

// SharedGroupNotFound builds a CodeSharedGroupNotFound failure.
func SharedGroupNotFound(name string) *Error {
	return &Error{Code: CodeSharedGroupNotFound, Subject: name}
}

// SystemExcludeInvalid builds a CodeSystemExcludeInvalid failure.
func SystemExcludeInvalid(names []string) *Error {
	return &Error{Code: CodeSystemExcludeInvalid, Names: names}
}

// SharedExcludeInvalid builds a CodeSharedExcludeInvalid failure.
func SharedExcludeInvalid(names []string) *Error {
	return &Error{Code: CodeSharedExcludeInvalid, Names: names}
}

// DuplicateSharedField builds a CodeDuplicateSharedField failure.
func DuplicateSharedField(field string, groups []string) *Error {
	return &Error{Code: CodeDuplicateSharedField, Subject: field, Names: groups}
}

// InvalidSharedGroupKind builds a CodeInvalidSharedGroupKind failure.
func InvalidSharedGroupKind(group string) *Error {
	return &Error{Code: CodeInvalidSharedGroupKind, Subject: group}
}

// WithSuggestions returns e with suggestions attached.
func (e *Error) WithSuggestions(s []string) *Error {
	e.Suggestions = s
	return e
}

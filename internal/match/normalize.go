package match

import (
	"strings"
	"unicode"
)

// SystemPrefix is the conventional prefix of system field names.
const SystemPrefix = "sys_"

// Normalize folds a definition name for comparison: the system prefix is
// dropped, letters are lowered and separators removed, so "sys_Title",
// "title" and "TI-TLE" all normalize to "title".
func Normalize(s string) string {
	if len(s) > len(SystemPrefix) && strings.EqualFold(s[:len(SystemPrefix)], SystemPrefix) {
		s = s[len(SystemPrefix):]
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

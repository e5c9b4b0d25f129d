package schemagrid

import (
	"strings"
	"unicode"
)

// SpacePascalCase inserts spaces before upper case
// characters within PascalCase or camelCase field names
// and upper cases the first character.
// It also replaces underscore '_' and dash '-' characters with spaces.
// Used as column title for schema fields without title.
func SpacePascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastWasUpper := true
	lastWasSpace := true
	for _, r := range name {
		if r == '_' || r == '-' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasUpper = false
			lastWasSpace = true
			continue
		}
		isUpper := unicode.IsUpper(r)
		if isUpper && !lastWasUpper && !lastWasSpace {
			b.WriteByte(' ')
		}
		if lastWasSpace {
			r = unicode.ToUpper(r)
			isUpper = true
		}
		b.WriteRune(r)
		lastWasUpper = isUpper
		lastWasSpace = unicode.IsSpace(r)
	}
	return strings.TrimSpace(b.String())
}

// isEmptyValue returns true for nil, the empty string
// and empty objects or arrays.
func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case Record:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}

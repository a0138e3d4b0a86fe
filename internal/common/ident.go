package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExportedName upper-cases the first letter of name.
// Names that do not start with a letter get a "Get" prefix so the result is
// still an exported identifier.
func ExportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "Get" + name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// SnakeCase converts a CamelCase identifier into snake_case.
// Example: "UserSettings" -> "user_settings", "HTTPConfig" -> "http_config".
func SnakeCase(name string) string {
	runes := []rune(name)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// AccessorNames returns the getter and setter method names for a property.
// Example: "count" -> ("Count", "SetCount"), "_count" -> ("Get_count", "Set_count").
func AccessorNames(property string) (getter, setter string) {
	r, _ := utf8.DecodeRuneInString(property)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "Get" + property, "Set" + property
	}

	getter = ExportedName(property)

	return getter, "Set" + getter
}

// Package casing converts style property names between camel and kebab forms.
package casing

import "strings"

// ToCamel converts hyphenated name to camel case ("margin-block" -> "marginBlock",
// "-webkit-appearance" -> "WebkitAppearance"). Custom properties and names
// which already contain an upper case letter are returned unchanged.
func ToCamel(name string) string {
	if hasUpper(name) || !strings.Contains(name, "-") || strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) {
			i++
			if c = name[i]; 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToKebab converts camel case name to its hyphenated form ("marginBlock" ->
// "margin-block", "MozTabSize" -> "-moz-tab-size"). Names which already contain a
// hyphen are returned unchanged.
func ToKebab(name string) string {
	if strings.Contains(name, "-") || !hasUpper(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

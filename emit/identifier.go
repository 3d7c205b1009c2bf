// Package emit renders a catalog schema back out as text: a small DDL
// dialect and a host-language entity class declaration, both generated
// deterministically from a catalog.MetadataDocument.
package emit

import (
	"strconv"
	"strings"
	"unicode"
)

// goKeywords are reserved words that cannot be used as a Go identifier.
// Clashing names are prefixed with "_" the way cleanIdentifier prefixes
// any other invalid identifier.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// cleanIdentifier rewrites s into a valid Go identifier: invalid
// characters become "_", a leading digit is prefixed with "_", and an
// empty result falls back to fallback.
func cleanIdentifier(s, fallback string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		out = fallback
	}
	if goKeywords[out] {
		out = "_" + out
	}
	return out
}

// exportedName upper-cases the first letter of s, so a column's
// lowerCamel field name becomes an exported Go struct field name.
func exportedName(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}

// disambiguate appends a numeric suffix to name if it has already been
// used, the way the host-entity emitter avoids colliding member names
// after cleanIdentifier/exportedName map two distinct columns onto the
// same Go identifier.
func disambiguate(name string, seen map[string]int) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	return name + strconv.Itoa(n)
}

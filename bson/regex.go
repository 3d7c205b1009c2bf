package bson

// Regex is the pattern/options payload of a RegularExpression value:
// on the wire, both fields are CStrings (NUL-terminated, interior-NUL-free
// UTF-8).
type Regex struct {
	Pattern string
	Options string
}

// Package ranking implements bag-of-words text ranking: vocabulary
// construction, term-frequency vectorization and cosine similarity scoring.
//
// Every call builds its own Vocabulary and Vectors, so concurrent calls
// share no mutable state unless a Cache is supplied explicitly.
package ranking

import "strings"

// Tokenize lowercases text and splits it on every run of characters outside
// [A-Za-z0-9_]. Empty tokens are never returned.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

// isSeparator reports whether r is a non-word character. Only ASCII letters,
// digits and underscore count as word characters.
func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return false
	default:
		return true
	}
}

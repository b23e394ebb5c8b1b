// Package textnorm folds strings into a form suitable for search and comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize removes accents, lowercases and drops every whitespace rune.
// "Gênesis 1" becomes "genesis1".
func Normalize(s string) string {
	// Chained transformers carry state, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isLatinMark)))
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isLatinMark matches the Combining Diacritical Marks block. Marks of other
// scripts, such as Hebrew points, are kept.
func isLatinMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

// Contains reports whether needle occurs in haystack after both are normalized.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

package domain

import (
	"strings"
	"unicode"
)

// NormalizeText folds a headword for duplicate detection within one request:
// surrounding whitespace is trimmed, letters are lowercased and inner runs of
// whitespace collapse to a single space. Diacritics, hyphens and apostrophes
// are kept, so "well-known" and "well known" stay distinct.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

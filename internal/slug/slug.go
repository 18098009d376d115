// Package slug derives filesystem- and URL-safe tokens from post titles.
package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds the length of a slug in runes.
const MaxLen = 200

const separator = '-'

// Make converts a human-readable title into a slug: lower-cased, with
// whitespace and underscores collapsed to a single '-', all other
// non-letter/non-digit runes stripped, and the result truncated to MaxLen
// without a trailing separator. Unicode letters are kept so non-ASCII titles
// survive. Make is deterministic and idempotent.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == separator:
			pendingSep = true
		}
	}
	return truncate(b.String(), MaxLen)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		runes = runes[:max]
	}
	for len(runes) > 0 && runes[len(runes)-1] == separator {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

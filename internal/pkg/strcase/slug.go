package strcase

import (
	"strings"
	"unicode"
)

// ToSlug converts a string to a URL-safe slug: lowercase, with runs of
// non-alphanumeric characters collapsed into single hyphens.
func ToSlug(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteRune('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}

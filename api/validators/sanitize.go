package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims s, drops control characters, collapses inner runs of
// whitespace and truncates to maxRunes without splitting a character.
func SanitizeString(s string, maxRunes int) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	count := 0
	for _, r := range strings.TrimSpace(s) {
		if r == utf8.RuneError || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			if maxRunes > 0 && count >= maxRunes {
				break
			}
			b.WriteByte(' ')
			count++
		}
		space = false
		if maxRunes > 0 && count >= maxRunes {
			break
		}
		b.WriteRune(r)
		count++
	}
	return strings.TrimSpace(b.String())
}

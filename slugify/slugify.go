// Package slugify derives URL-safe tour identifiers from titles.
package slugify

import "strings"

// Make lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens.
// Deterministic, no side effects; collision handling belongs to the caller.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes characters and drops combining marks,
// so "Île-de-France" becomes "Ile-de-France".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// ASCII-transliterated, runs of anything outside [a-z0-9] collapsed to a
// single hyphen, no leading or trailing hyphens.
//
// The function is idempotent: Slugify(Slugify(s)) == Slugify(s).
// An empty or blank name yields an empty slug; callers reject blank names
// during validation before slugs are derived.
func Slugify(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

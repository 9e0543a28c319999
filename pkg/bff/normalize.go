package bff

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// standardizeName lowercases, trims, and strips Spanish diacritics so that
// "Panadería" and "panaderia" compare equal.
func standardizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	stripped, _, err := transform.String(deaccent, name)
	if err != nil {
		return name
	}
	return stripped
}

package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD and removes combining marks, so
// "Modrić" and "Modric" normalize to the same key.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// latinFold maps letters with no canonical decomposition, which the
// NFD pass cannot reduce, to their ASCII counterparts. Without it
// "Ødegaard" would lose its first letter entirely.
var latinFold = map[rune]string{
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'þ': "th",
}

// Normalize produces the stable lookup key for a name: lowercase,
// diacritics and punctuation stripped, whitespace collapsed. The
// output must stay deterministic; cache keys and registry lookups
// both depend on it.
func Normalize(name string) string {
	lowered := strings.ToLower(name)

	folded, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			if ascii, ok := latinFold[r]; ok {
				b.WriteString(ascii)
			}
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// lastToken returns the final whitespace-separated token of a
// normalized name ("jude bellingham" -> "bellingham").
func lastToken(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

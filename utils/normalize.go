// utils/normalize.go
package utils

import "strings"

// diacriticFold maps accented characters to their base letter. Input is
// lowercased before lookup, so only lowercase forms are listed.
var diacriticFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

// Normalize lowercases, trims, folds diacritics and collapses whitespace
// runs to a single space. It is total (empty input yields "") and
// idempotent.
func Normalize(s string) string {
	return normalize(s, false)
}

// NormalizeFolded is Normalize plus punctuation folding: "&" becomes "y"
// and ".", "," and "-" are stripped. Useful for matching legal names where
// "Pérez & Cía. S.R.L." should equal "perez y cia srl".
func NormalizeFolded(s string) string {
	return normalize(s, true)
}

func normalize(s string, foldPunctuation bool) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true // leading whitespace is dropped
	for _, r := range s {
		if folded, ok := diacriticFold[r]; ok {
			r = folded
		}
		if foldPunctuation {
			switch r {
			case '&':
				r = 'y'
			case '.', ',', '-':
				continue
			}
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}

package style

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName converts a token name into a variable identifier.
//
// The name is lower-cased with the full Unicode case mapping, every character
// other than a-z, ' ' and '-' is dropped, and each run of spaces becomes a
// single '-'. Accented letters are dropped, not folded, and tabs or newlines
// do not separate words. The output only contains [a-z-] and
// NormalizeName(NormalizeName(s)) == NormalizeName(s).
func NormalizeName(name string) string {
	lower := cases.Lower(language.Und).String(name)

	var b strings.Builder
	b.Grow(len(lower))
	inSpace := false
	for _, r := range lower {
		switch {
		case r == ' ':
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
		case (r >= 'a' && r <= 'z') || r == '-':
			b.WriteRune(r)
			inSpace = false
		}
		// anything else is dropped without ending a run of spaces
	}
	return b.String()
}

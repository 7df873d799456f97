package zones

import "strings"

// Abbreviate shortens a zone name to the initials of its words.
// Parenthesised qualifiers keep their brackets and first letter, and
// everything from a '+' or '-' sign onward is copied as is:
//
//	"Pacific Standard Time" -> "PST"
//	"Mexico (Central)"      -> "M(C)"
//	"UTC-05:30"             -> "U-05:30"
func Abbreviate(name string) string {
	var b strings.Builder
	atWordStart := true
	verbatim := false

	for _, r := range name {
		switch {
		case verbatim:
			b.WriteRune(r)
		case r == ' ':
			atWordStart = true
		case atWordStart:
			b.WriteRune(r)
			// the letter after an opening bracket also starts a word
			if r != '(' {
				atWordStart = false
			}
			if isSign(r) {
				verbatim = true
			}
		case r == ')':
			b.WriteRune(r)
		case isSign(r):
			b.WriteRune(r)
			verbatim = true
		}
	}
	return b.String()
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

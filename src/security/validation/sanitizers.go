package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes non-printable characters from a cell, allowing
// common whitespace. Exports occasionally carry BOMs or stray control bytes
// that would otherwise poison symbol map keys.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}

package strutil

import "unicode"

// IsBlank reports whether s is empty or made only of blank characters.
func IsBlank(s string) bool {
	for _, r := range s {
		if !IsBlankChar(r) {
			return false
		}
	}
	return true
}

// IsBlankChar reports whether r is an ASCII white space control, a Unicode
// separator, a zero-width no-break space (U+FEFF) or a left-to-right
// embedding (U+202A). NEL (U+0085) is not blank.
func IsBlankChar(r rune) bool {
	switch {
	case r >= '\t' && r <= '\r':
		return true
	case r >= 0x1c && r <= 0x1f:
		return true
	case r == '\ufeff' || r == '\u202a':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// IsEmpty reports whether s has zero length.
func IsEmpty(s string) bool {
	return len(s) == 0
}

// IsNotEmpty is the negation of IsEmpty.
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}
